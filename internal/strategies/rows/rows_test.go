package rows_test

import (
	"runtime"
	"testing"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
	"github.com/amitgangrade/mandelbench/internal/strategies/rows"
)

func TestBands(t *testing.T) {
	testCases := []struct {
		name     string
		h, n     int
		expected [][2]int
	}{
		{"even split", 10, 2, [][2]int{{0, 5}, {5, 10}}},
		{"remainder goes first", 10, 3, [][2]int{{0, 4}, {4, 7}, {7, 10}}},
		{"more workers than rows", 3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{"zero workers", 4, 0, [][2]int{{0, 4}}},
		{"no rows", 0, 4, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := rows.Bands(tc.h, tc.n)
			if len(got) != len(tc.expected) {
				t.Fatalf("Bands(%d, %d) = %v, expected %v", tc.h, tc.n, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("band %d = %v, expected %v", i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestBandsCoverEveryRow(t *testing.T) {
	for n := 1; n <= 17; n++ {
		bands := rows.Bands(mandel.Height, n)
		next := 0
		for _, b := range bands {
			if b[0] != next {
				t.Fatalf("n=%d: band %v does not start at %d", n, b, next)
			}
			if b[1] <= b[0] {
				t.Fatalf("n=%d: empty band %v", n, b)
			}
			next = b[1]
		}
		if next != mandel.Height {
			t.Errorf("n=%d: bands end at %d, expected %d", n, next, mandel.Height)
		}
	}
}

func TestNewDefaultsToGOMAXPROCS(t *testing.T) {
	s := rows.New(0)
	if s.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, expected %d", s.Workers(), runtime.GOMAXPROCS(0))
	}
}

func TestRowsMatchesSerial(t *testing.T) {
	expected := mandel.Standard()
	want := mandel.Compute(expected)

	for _, workers := range []int{1, 2, 3, 7, 16} {
		s, err := registry.Create(rows.ID, registry.Options{Workers: workers})
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", rows.ID, err)
		}

		f := mandel.Standard()
		got := s.Evaluate(f)
		if got != want {
			t.Errorf("workers=%d: checksum %d, expected %d", workers, got, want)
		}
		if !f.Equal(expected) {
			t.Errorf("workers=%d: field differs from serial evaluation", workers)
		}
	}
}

func BenchmarkRows(b *testing.B) {
	s := rows.New(0)
	f := mandel.Standard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Evaluate(f)
	}
}
