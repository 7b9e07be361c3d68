// Package storage provides SQLite-based persistence for benchmark runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/amitgangrade/mandelbench/internal/bench"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord represents a single stored benchmark run.
type RunRecord struct {
	ID        int64
	SessionID string
	Strategy  string
	Workers   int
	RunIndex  int
	Elapsed   time.Duration
	Checksum  uint64
	CreatedAt time.Time
}

// StrategyStats contains aggregated statistics for a strategy.
type StrategyStats struct {
	Strategy  string
	RunCount  int
	Best      time.Duration
	Average   time.Duration
	Checksums int // Distinct checksums seen; anything but 1 means a broken strategy
	LastRun   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			strategy TEXT NOT NULL,
			workers INTEGER NOT NULL DEFAULT 0,
			run_index INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			checksum INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_strategy ON runs(strategy);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON runs(strategy, elapsed_ns ASC);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (session_id, strategy, workers, run_index, elapsed_ns, checksum)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Strategy, r.Workers, r.RunIndex, int64(r.Elapsed), int64(r.Checksum),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveRunResult implements bench.ResultSaver.
func (s *Store) SaveRunResult(data bench.RunData) error {
	_, err := s.SaveRun(RunRecord{
		SessionID: data.SessionID,
		Strategy:  data.Strategy,
		Workers:   data.Workers,
		RunIndex:  data.RunIndex,
		Elapsed:   data.Elapsed,
		Checksum:  data.Checksum,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ bench.ResultSaver = (*Store)(nil)

const runColumns = `id, session_id, strategy, workers, run_index, elapsed_ns, checksum, created_at`

// RecentRuns retrieves the most recent runs, newest first.
// An empty strategy matches every strategy.
func (s *Store) RecentRuns(strategy string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE (? = '' OR strategy = ?)
		 ORDER BY id DESC
		 LIMIT ?`,
		strategy, strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// FastestRuns retrieves the fastest runs of a strategy, fastest first.
func (s *Store) FastestRuns(strategy string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE strategy = ?
		 ORDER BY elapsed_ns ASC, id ASC
		 LIMIT ?`,
		strategy, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// SessionRuns retrieves every run of a session in run order.
func (s *Store) SessionRuns(sessionID string) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE session_id = ?
		 ORDER BY run_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return scanRuns(rows)
}

// Durations returns the elapsed time of every stored run of a strategy.
func (s *Store) Durations(strategy string) ([]time.Duration, error) {
	rows, err := s.db.Query(
		"SELECT elapsed_ns FROM runs WHERE strategy = ? ORDER BY id ASC",
		strategy,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query durations: %w", err)
	}
	defer rows.Close()

	var ds []time.Duration
	for rows.Next() {
		var ns int64
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ds = append(ds, time.Duration(ns))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ds, nil
}

// Strategies returns the distinct strategies with stored runs, sorted.
func (s *Store) Strategies() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT strategy FROM runs ORDER BY strategy")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query strategies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ids, nil
}

// GetStrategyStats retrieves aggregated statistics for a strategy.
// A strategy without runs yields zero counts.
func (s *Store) GetStrategyStats(strategy string) (*StrategyStats, error) {
	stats := &StrategyStats{Strategy: strategy}

	var best, avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(elapsed_ns), 0), COALESCE(AVG(elapsed_ns), 0), COUNT(DISTINCT checksum)
		 FROM runs WHERE strategy = ?`,
		strategy,
	).Scan(&stats.RunCount, &best, &avg, &stats.Checksums)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get strategy stats: %w", err)
	}
	stats.Best = time.Duration(best)
	stats.Average = time.Duration(avg)

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE strategy = ? ORDER BY id DESC LIMIT 1`,
		strategy,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// ClearRuns deletes all runs of a strategy. An empty strategy deletes everything.
// Returns the number of deleted runs.
func (s *Store) ClearRuns(strategy string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM runs WHERE (? = '' OR strategy = ?)", strategy, strategy)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared runs: %w", err)
	}
	return n, nil
}

// scanRuns reads every row into a RunRecord and closes rows.
func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var elapsed, checksum int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Strategy, &r.Workers, &r.RunIndex,
			&elapsed, &checksum, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsed)
		r.Checksum = uint64(checksum)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
