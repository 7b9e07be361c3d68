// Package bench times strategy runs over the standard field, collects them
// into sessions and reports the results.
package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/registry"
)

// ErrChecksumMismatch is returned when two runs of a session disagree.
var ErrChecksumMismatch = errors.New("bench: checksum mismatch between runs")

// RunResult is one timed pass over the field.
type RunResult struct {
	Index    int           // 1-based run number within the session
	Elapsed  time.Duration // Wall-clock time of the grid loop only
	Checksum uint64        // Sum of every iteration count
}

// Seconds returns the elapsed time in seconds.
func (r RunResult) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Session groups the runs of one invocation of a strategy.
type Session struct {
	ID        string
	Strategy  string
	Workers   int
	StartedAt time.Time
	Runs      []RunResult
}

// NewSession creates an empty session with a fresh ID.
func NewSession(strategy string, workers int) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Strategy:  strategy,
		Workers:   workers,
		StartedAt: time.Now(),
	}
}

// Record appends a run. It fails with ErrChecksumMismatch if the run's
// checksum differs from the runs already recorded; the run is kept either way.
func (s *Session) Record(r RunResult) error {
	s.Runs = append(s.Runs, r)
	if len(s.Runs) > 1 && s.Runs[0].Checksum != r.Checksum {
		return fmt.Errorf("%w: run %d got %d, run %d got %d",
			ErrChecksumMismatch, s.Runs[0].Index, s.Runs[0].Checksum, r.Index, r.Checksum)
	}
	return nil
}

// Best returns the fastest run, the earliest one on ties.
// Returns the zero RunResult for an empty session.
func (s *Session) Best() RunResult {
	if len(s.Runs) == 0 {
		return RunResult{}
	}
	best := s.Runs[0]
	for _, r := range s.Runs[1:] {
		if r.Elapsed < best.Elapsed {
			best = r
		}
	}
	return best
}

// Checksum returns the session's checksum, or 0 if nothing ran.
func (s *Session) Checksum() uint64 {
	if len(s.Runs) == 0 {
		return 0
	}
	return s.Runs[0].Checksum
}

// Durations returns the elapsed time of each run in run order.
func (s *Session) Durations() []time.Duration {
	ds := make([]time.Duration, len(s.Runs))
	for i, r := range s.Runs {
		ds[i] = r.Elapsed
	}
	return ds
}

// Stats summarizes the session's run times.
func (s *Session) Stats() Stats {
	return Summarize(s.Durations())
}

// RunOnce performs a single timed pass of strategy over a fresh standard field.
// The field is allocated before the clock starts and dropped afterwards.
func RunOnce(strategy registry.Strategy, index int) RunResult {
	f := mandel.Standard()

	start := time.Now()
	checksum := strategy.Evaluate(f)
	elapsed := time.Since(start)

	return RunResult{
		Index:    index,
		Elapsed:  elapsed,
		Checksum: checksum,
	}
}
