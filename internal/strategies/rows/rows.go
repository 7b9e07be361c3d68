// Package rows registers a parallel strategy that splits the field into
// contiguous row bands, one goroutine per band. Each band writes a disjoint
// slice of the field and returns a partial checksum; the partials are summed
// once every worker is done.
package rows

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
)

// ID is the registry identifier of the row-band strategy.
const ID = "rows"

func init() {
	registry.Register(ID, func(opts registry.Options) registry.Strategy {
		return New(opts.Workers)
	})
}

// Strategy evaluates row bands concurrently.
type Strategy struct {
	workers int
}

// New creates a row-band strategy. Non-positive worker counts use
// runtime.GOMAXPROCS(0).
func New(workers int) *Strategy {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Strategy{workers: workers}
}

// ID returns "rows".
func (s *Strategy) ID() string { return ID }

// Title returns the display name including the worker count.
func (s *Strategy) Title() string {
	return fmt.Sprintf("Parallel row bands (%d workers)", s.workers)
}

// Workers returns the configured worker count.
func (s *Strategy) Workers() int {
	return s.workers
}

// Bands splits h rows into at most n contiguous half-open ranges of
// near-equal size. The first h%n bands get one extra row.
func Bands(h, n int) [][2]int {
	if h <= 0 {
		return nil
	}
	if n > h {
		n = h
	}
	if n < 1 {
		n = 1
	}

	bands := make([][2]int, 0, n)
	size, extra := h/n, h%n
	y := 0
	for i := 0; i < n; i++ {
		rows := size
		if i < extra {
			rows++
		}
		bands = append(bands, [2]int{y, y + rows})
		y += rows
	}
	return bands
}

// Evaluate fills f using one goroutine per band and returns the reduced checksum.
func (s *Strategy) Evaluate(f *mandel.Field) uint64 {
	bands := Bands(f.H, s.workers)
	partials := make([]uint64, len(bands))

	var wg sync.WaitGroup
	for i, band := range bands {
		wg.Add(1)
		go func(i int, y0, y1 int) {
			defer wg.Done()
			partials[i] = mandel.ComputeRows(f, y0, y1)
		}(i, band[0], band[1])
	}
	wg.Wait()

	var checksum uint64
	for _, p := range partials {
		checksum += p
	}
	return checksum
}
