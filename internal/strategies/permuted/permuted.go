// Package permuted registers strategies that visit pixels out of row-major
// order. They exist to show that the checksum does not depend on the order
// of evaluation.
package permuted

import (
	"math/rand/v2"
	"sync"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
)

// Registry identifiers.
const (
	ReverseID  = "reverse"
	ShuffledID = "shuffled"
)

// DefaultSeed is used when no seed is configured, keeping shuffled runs reproducible.
const DefaultSeed uint64 = 0x5eed

func init() {
	registry.Register(ReverseID, func(registry.Options) registry.Strategy {
		return &Strategy{id: ReverseID, title: "Reverse (last pixel first)", order: Reverse}
	})
	registry.Register(ShuffledID, func(opts registry.Options) registry.Strategy {
		seed := opts.Seed
		if seed == 0 {
			seed = DefaultSeed
		}
		return &Strategy{
			id:    ShuffledID,
			title: "Shuffled (seeded permutation)",
			order: func(n int) []int { return Shuffled(n, seed) },
		}
	})
}

// Strategy evaluates pixels in the order produced by its order function.
// The order is built on first use and cached per field size.
type Strategy struct {
	id    string
	title string
	order func(n int) []int

	mu     sync.Mutex
	cached []int
}

// ID returns the strategy identifier.
func (s *Strategy) ID() string { return s.id }

// Title returns the display name.
func (s *Strategy) Title() string { return s.title }

// Order returns the visiting order for a field of n pixels.
func (s *Strategy) Order(n int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cached) != n {
		s.cached = s.order(n)
	}
	return s.cached
}

// Evaluate fills f in this strategy's order and returns the checksum.
func (s *Strategy) Evaluate(f *mandel.Field) uint64 {
	return mandel.ComputeOrder(f, s.Order(f.Len()))
}

// Reverse returns the indices n-1 down to 0.
func Reverse(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

// Shuffled returns a permutation of 0..n-1 determined by seed.
func Shuffled(n int, seed uint64) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
