package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store keeps run metadata in a local SQLite database. The fetch pipeline
// never reads from it; it only feeds the history/stats subcommands.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			articles    INTEGER NOT NULL,
			categories  INTEGER NOT NULL,
			warnings    INTEGER NOT NULL DEFAULT 0,
			output      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Record inserts one completed run. A blank ID gets a fresh UUID.
// Timestamps are stored as RFC3339 UTC strings so lexicographic order
// equals chronological order.
func (s *Store) Record(run Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.writeDB.Exec(`
		INSERT INTO runs (id, started_at, duration_ms, articles, categories, warnings, output)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339), run.Duration.Milliseconds(),
		run.Articles, run.Categories, run.Warnings, run.Output)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.readDB.Query(`
		SELECT id, started_at, duration_ms, articles, categories, warnings, output
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&r.ID, &startedAt, &durationMS, &r.Articles, &r.Categories, &r.Warnings, &r.Output); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats summarizes the runs table; dbPath is used for the on-disk size.
func (s *Store) Stats(dbPath string) (Summary, error) {
	var (
		sum  Summary
		last string
	)
	err := s.readDB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(articles), 0), COALESCE(MAX(started_at), '')
		FROM runs
	`).Scan(&sum.Runs, &sum.TotalArticles, &last)
	if err != nil {
		return Summary{}, fmt.Errorf("reading stats: %w", err)
	}
	if last != "" {
		sum.LastRun, _ = time.Parse(time.RFC3339, last)
	}

	if fi, err := os.Stat(dbPath); err == nil {
		sum.SizeBytes = fi.Size()
	}
	return sum, nil
}

// Prune deletes runs older than the retention period and reports how
// many rows went away.
func (s *Store) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).UTC().Format(time.RFC3339)
	res, err := s.writeDB.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	return res.RowsAffected()
}
