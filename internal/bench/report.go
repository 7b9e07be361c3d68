package bench

import (
	"fmt"
	"io"
	"sort"
)

// Report writes the session outcome. Sessions with several runs list each
// run first; the last two lines are always the best execution time and the
// checksum.
func Report(w io.Writer, sess *Session) error {
	if len(sess.Runs) > 1 {
		for _, r := range sess.Runs {
			if _, err := fmt.Fprintf(w, "  Run %2d: %.4fs\n", r.Index, r.Seconds()); err != nil {
				return err
			}
		}
	}

	best := sess.Best()
	if _, err := fmt.Fprintf(w, "Execution Time: %.4fs\n", best.Seconds()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Checksum: %d\n", sess.Checksum())
	return err
}

// Comparison pairs a strategy with the statistics of its stored runs.
type Comparison struct {
	Strategy string
	Stats    Stats
}

// SortByFastest orders comparisons by fastest run, strategies without runs last.
func SortByFastest(rows []Comparison) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Stats, rows[j].Stats
		if (a.Count == 0) != (b.Count == 0) {
			return a.Count != 0
		}
		return a.Fastest < b.Fastest
	})
}

// WriteComparison prints a fixed-width table of strategy statistics in seconds.
// Strategies without runs are shown as N/A.
func WriteComparison(w io.Writer, rows []Comparison) error {
	SortByFastest(rows)

	line := "--------------------------------------------------------------------------"
	if _, err := fmt.Fprintf(w, "%-12s | %-10s | %-10s | %-10s | %-10s | %s\n",
		"Strategy", "Fastest", "Slowest", "Mean", "Median", "Runs"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, row := range rows {
		s := row.Stats
		var err error
		if s.Count == 0 {
			_, err = fmt.Fprintf(w, "%-12s | %10s | %10s | %10s | %10s | %d\n",
				row.Strategy, "N/A", "N/A", "N/A", "N/A", 0)
		} else {
			_, err = fmt.Fprintf(w, "%-12s | %10.4f | %10.4f | %10.4f | %10.4f | %d\n",
				row.Strategy, s.Fastest.Seconds(), s.Slowest.Seconds(),
				s.Mean.Seconds(), s.Median.Seconds(), s.Count)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
