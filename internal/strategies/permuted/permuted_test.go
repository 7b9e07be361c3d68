package permuted_test

import (
	"sort"
	"testing"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/strategies/permuted"
)

func isPermutation(order []int) bool {
	sorted := append([]int(nil), order...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			return false
		}
	}
	return true
}

func TestReverse(t *testing.T) {
	order := permuted.Reverse(4)
	expected := []int{3, 2, 1, 0}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Reverse(4) = %v, expected %v", order, expected)
		}
	}
}

func TestShuffledDeterministic(t *testing.T) {
	a := permuted.Shuffled(1000, 7)
	b := permuted.Shuffled(1000, 7)
	c := permuted.Shuffled(1000, 8)

	if !isPermutation(a) {
		t.Fatal("Shuffled should return a permutation")
	}

	same, differ := true, false
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
		if a[i] != c[i] {
			differ = true
		}
	}
	if !same {
		t.Error("same seed should give the same permutation")
	}
	if !differ {
		t.Error("different seeds should give different permutations")
	}
}

func TestPermutedStrategiesMatchSerial(t *testing.T) {
	expected := mandel.Standard()
	want := mandel.Compute(expected)

	for _, id := range []string{permuted.ReverseID, permuted.ShuffledID} {
		t.Run(id, func(t *testing.T) {
			s, err := registry.Create(id, registry.Options{Seed: 99})
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", id, err)
			}

			f := mandel.Standard()
			if got := s.Evaluate(f); got != want {
				t.Errorf("checksum %d, expected %d", got, want)
			}
			if !f.Equal(expected) {
				t.Error("field differs from row-major evaluation")
			}
		})
	}
}

func TestOrderCachedPerSize(t *testing.T) {
	s, err := registry.Create(permuted.ShuffledID, registry.Options{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	ps := s.(*permuted.Strategy)

	first := ps.Order(50)
	second := ps.Order(50)
	if &first[0] != &second[0] {
		t.Error("order should be reused for the same size")
	}
	if len(ps.Order(60)) != 60 {
		t.Error("order should be rebuilt for a new size")
	}
}
