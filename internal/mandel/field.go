package mandel

// Field holds one iteration count per pixel.
// Counts are stored in row-major order: index = y*W + x.
type Field struct {
	W     int   // Width of the field
	H     int   // Height of the field
	Iters []int // Flat array of counts, length W*H
}

// NewField allocates a zeroed field with the given dimensions.
// Non-positive dimensions yield an empty field.
func NewField(w, h int) *Field {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Field{
		W:     w,
		H:     h,
		Iters: make([]int, w*h),
	}
}

// Standard allocates a field covering the full benchmark grid.
func Standard() *Field {
	return NewField(Width, Height)
}

// Len returns the number of pixels in the field.
func (f *Field) Len() int {
	return len(f.Iters)
}

// index converts a coordinate to a flat array index.
func (f *Field) index(x, y int) int {
	return y*f.W + x
}

// InBounds returns true if the coordinate is inside the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.W && y >= 0 && y < f.H
}

// Coord converts a flat index back to its pixel coordinate.
func (f *Field) Coord(i int) (x, y int) {
	return i % f.W, i / f.W
}

// At returns the count stored at (x, y), or 0 when out of bounds.
func (f *Field) At(x, y int) int {
	if !f.InBounds(x, y) {
		return 0
	}
	return f.Iters[f.index(x, y)]
}

// Set stores n at (x, y). Out-of-bounds writes are ignored.
func (f *Field) Set(x, y, n int) {
	if f.InBounds(x, y) {
		f.Iters[f.index(x, y)] = n
	}
}

// Row returns the counts of row y as a view into the field.
// Returns nil if y is out of range.
func (f *Field) Row(y int) []int {
	if y < 0 || y >= f.H {
		return nil
	}
	start := y * f.W
	return f.Iters[start : start+f.W]
}

// Sum returns the checksum of the stored counts.
func (f *Field) Sum() uint64 {
	var sum uint64
	for _, n := range f.Iters {
		sum += uint64(n)
	}
	return sum
}

// InSet returns the number of pixels that never escaped.
func (f *Field) InSet() int {
	count := 0
	for _, n := range f.Iters {
		if n == MaxIter {
			count++
		}
	}
	return count
}

// Equal returns true if two fields have the same dimensions and contents.
func (f *Field) Equal(other *Field) bool {
	if f.W != other.W || f.H != other.H {
		return false
	}
	for i, n := range f.Iters {
		if n != other.Iters[i] {
			return false
		}
	}
	return true
}
