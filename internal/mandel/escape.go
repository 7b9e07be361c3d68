// Package mandel implements the escape-time kernel of the Mandelbrot
// benchmark: the per-point iteration, the fixed pixel-to-plane mapping and
// the flat row-major field the driver fills.
//
// Everything in this package is pure and allocation-free except NewField.
// Grid size and iteration bound are compile-time constants.
package mandel

// Fixed benchmark geometry.
const (
	Width   = 1000 // Grid width in pixels
	Height  = 1000 // Grid height in pixels
	MaxIter = 256  // Iteration bound; a result of MaxIter means "in the set"

	// EscapeRadiusSq is the squared escape radius (|z| > 2).
	EscapeRadiusSq = 4.0

	// Origin is the pixel coordinate mapped to 0 on both axes.
	Origin = 500.0
	// Scale is the number of pixels per unit of the complex plane.
	Scale = 200.0
)

// Evaluate returns the escape iteration count for c = cr + ci*i.
//
// The result is the smallest n in [0, MaxIter] such that |z_n|^2 > 4 after
// n steps of z = z^2 + c starting at z = 0, or MaxIter when the orbit stays
// bounded. The guard is tested before every step, so a point landing exactly
// on the radius keeps iterating.
func Evaluate(cr, ci float64) int {
	var zr, zi float64
	n := 0
	for zr*zr+zi*zi <= EscapeRadiusSq && n < MaxIter {
		next := zr*zr - zi*zi + cr
		zi = 2*zr*zi + ci
		zr = next
		n++
	}
	return n
}

// PixelToComplex maps a pixel coordinate onto the complex plane.
// (0,0) maps to (-2.5,-2.5) and (500,500) to the origin.
func PixelToComplex(x, y int) (cr, ci float64) {
	cr = (float64(x) - Origin) / Scale
	ci = (float64(y) - Origin) / Scale
	return cr, ci
}

// EvaluatePixel maps (x, y) and evaluates it.
func EvaluatePixel(x, y int) int {
	return Evaluate(PixelToComplex(x, y))
}
