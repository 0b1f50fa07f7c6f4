// Package benchstore persists benchmark samples (one row per repeated
// recording run) to a local SQLite database, so benchmark runs can be
// compared across commands or queried after the fact instead of only
// printing a delta per run.
package benchstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed append-only log of benchmark samples.
type Store struct {
	db *sql.DB
}

// Sample is one completed benchmark iteration.
type Sample struct {
	RunID       string
	Command     string
	SampleNum   int
	DeltaMicros int64
	MeasuredAt  time.Time
}

// Open opens (creating if needed) the benchmark database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open benchstore %q: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		started_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		sample_num INTEGER NOT NULL,
		delta_micros INTEGER NOT NULL,
		measured_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize benchstore schema: %w", err)
	}
	return nil
}

// NewRun starts a new benchmark run for command and returns its ID.
func (s *Store) NewRun(command string) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO runs (id, command, started_at) VALUES (?, ?, ?)`,
		runID, command, time.Now())
	if err != nil {
		return "", fmt.Errorf("insert benchmark run: %w", err)
	}
	return runID, nil
}

// RecordSample appends one benchmark iteration's measured delta.
func (s *Store) RecordSample(runID string, sampleNum int, delta time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO samples (run_id, sample_num, delta_micros, measured_at) VALUES (?, ?, ?, ?)`,
		runID, sampleNum, delta.Microseconds(), time.Now())
	if err != nil {
		return fmt.Errorf("insert benchmark sample: %w", err)
	}
	return nil
}

// Samples returns every delta recorded for runID, in sample order.
func (s *Store) Samples(runID string) ([]time.Duration, error) {
	rows, err := s.db.Query(
		`SELECT delta_micros FROM samples WHERE run_id = ? ORDER BY sample_num`, runID)
	if err != nil {
		return nil, fmt.Errorf("query benchmark samples: %w", err)
	}
	defer rows.Close()

	var out []time.Duration
	for rows.Next() {
		var micros int64
		if err := rows.Scan(&micros); err != nil {
			return nil, fmt.Errorf("scan benchmark sample: %w", err)
		}
		out = append(out, time.Duration(micros)*time.Microsecond)
	}
	return out, rows.Err()
}
