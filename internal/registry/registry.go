// Package registry provides a global registry for evaluation strategies.
// Strategies register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/amitgangrade/mandelbench/internal/mandel"
)

// Strategy is the interface every way of filling the field implements.
// All strategies must produce the same field and checksum; they differ only
// in the order or concurrency of evaluation.
type Strategy interface {
	// ID returns a unique identifier for this strategy (e.g., "serial", "rows").
	// Used for CLI flags and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Evaluate fills f and returns the checksum of every stored count.
	Evaluate(f *mandel.Field) uint64
}

// Options configures a strategy at creation time.
type Options struct {
	Workers int    // Goroutines for parallel strategies; <= 0 means GOMAXPROCS
	Seed    uint64 // Permutation seed for randomized orders; 0 means the default seed
}

// Info contains metadata about a registered strategy.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a strategy.
type Factory func(opts Options) Strategy

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a strategy factory to the registry.
// Typically called from a strategy package's init() function.
// Panics if a strategy with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Options{}).Title()
}

// List returns information about all registered strategies, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a strategy by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts Options) (Strategy, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", id)
	}

	return f(opts), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns the registered strategy IDs, sorted.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
