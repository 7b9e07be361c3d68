package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amitgangrade/mandelbench/internal/registry"
)

// RunData is the storage-facing view of a single run.
type RunData struct {
	SessionID string
	Strategy  string
	Workers   int
	RunIndex  int
	Elapsed   time.Duration
	Checksum  uint64
}

// ResultSaver persists finished runs.
// This allows the harness to save results without a direct storage dependency.
type ResultSaver interface {
	SaveRunResult(data RunData) error
}

// SaveSession hands every run of sess to saver.
func SaveSession(saver ResultSaver, sess *Session) error {
	for _, r := range sess.Runs {
		err := saver.SaveRunResult(RunData{
			SessionID: sess.ID,
			Strategy:  sess.Strategy,
			Workers:   sess.Workers,
			RunIndex:  r.Index,
			Elapsed:   r.Elapsed,
			Checksum:  r.Checksum,
		})
		if err != nil {
			return fmt.Errorf("bench: cannot save run %d: %w", r.Index, err)
		}
	}
	return nil
}

// Runner executes a strategy a number of times and collects a session.
type Runner struct {
	Strategy registry.Strategy
	Runs     int         // Number of timed passes; <= 0 means 1
	Workers  int         // Recorded with the session, informational
	Logger   *log.Logger // Optional; defaults to log.Default()
	Saver    ResultSaver // Optional; runs are saved after the session completes
	OnRun    func(RunResult)
}

// Run executes the session. The context is only consulted between runs;
// a pass that has started always completes.
func (r *Runner) Run(ctx context.Context) (*Session, error) {
	if r.Strategy == nil {
		return nil, errors.New("bench: no strategy")
	}

	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	runs := r.Runs
	if runs <= 0 {
		runs = 1
	}

	sess := NewSession(r.Strategy.ID(), r.Workers)
	logger.Debug("session started", "id", sess.ID, "strategy", sess.Strategy, "runs", runs)

	for i := 1; i <= runs; i++ {
		if err := ctx.Err(); err != nil {
			return sess, fmt.Errorf("bench: interrupted after %d runs: %w", len(sess.Runs), err)
		}

		result := RunOnce(r.Strategy, i)
		logger.Debug("run finished", "run", i, "elapsed", result.Elapsed, "checksum", result.Checksum)

		if err := sess.Record(result); err != nil {
			logger.Error("checksum mismatch", "run", i, "error", err)
			return sess, err
		}
		if r.OnRun != nil {
			r.OnRun(result)
		}
	}

	best := sess.Best()
	logger.Info("session finished",
		"strategy", sess.Strategy,
		"runs", len(sess.Runs),
		"best", best.Elapsed,
		"checksum", sess.Checksum(),
	)

	if r.Saver != nil {
		if err := SaveSession(r.Saver, sess); err != nil {
			return sess, err
		}
		logger.Debug("session saved", "id", sess.ID)
	}

	return sess, nil
}
