package bench

import (
	"slices"
	"time"

	"golang.org/x/exp/constraints"
)

// Stats summarizes a set of run times.
type Stats struct {
	Count   int
	Fastest time.Duration
	Slowest time.Duration
	Mean    time.Duration
	Median  time.Duration
}

// Summarize computes fastest, slowest, mean and median of ds.
// Empty input yields the zero Stats. The median of an even count is the
// mean of the two middle values.
func Summarize(ds []time.Duration) Stats {
	if len(ds) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(ds)
	slices.Sort(sorted)

	return Stats{
		Count:   len(sorted),
		Fastest: sorted[0],
		Slowest: sorted[len(sorted)-1],
		Mean:    mean(sorted),
		Median:  median(sorted),
	}
}

type number interface {
	constraints.Integer | constraints.Float
}

func mean[T number](vals []T) T {
	var sum T
	for _, v := range vals {
		sum += v
	}
	return sum / T(len(vals))
}

// median expects sorted input.
func median[T number](sorted []T) T {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
