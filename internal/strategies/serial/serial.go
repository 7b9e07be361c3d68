// Package serial registers the reference strategy: a single goroutine
// walking the field in row-major order.
package serial

import (
	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
)

// ID is the registry identifier of the serial strategy.
const ID = "serial"

func init() {
	registry.Register(ID, func(registry.Options) registry.Strategy {
		return Strategy{}
	})
}

// Strategy evaluates rows top to bottom, columns left to right.
type Strategy struct{}

// ID returns "serial".
func (Strategy) ID() string { return ID }

// Title returns the display name.
func (Strategy) Title() string { return "Serial (row-major)" }

// Evaluate fills f and returns its checksum.
func (Strategy) Evaluate(f *mandel.Field) uint64 {
	return mandel.Compute(f)
}
