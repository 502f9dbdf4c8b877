// Package journal records the outcome of each snapshot run in a local
// SQLite database. Only run metadata is kept; snapshot contents are never
// written.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// CategoryResult is the outcome of one category within a run.
type CategoryResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// Run is one journal entry.
type Run struct {
	ID         string
	Hostname   string
	StartedAt  time.Time
	Duration   time.Duration
	Error      string
	Categories map[string]CategoryResult
}

// Failed reports whether the run produced no snapshot.
func (r *Run) Failed() bool { return r.Error != "" }

// Journal stores run outcomes.
type Journal struct {
	db *sql.DB
}

// Open opens the SQLite database at path and runs migrations.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores run. An empty ID is replaced with a new UUID, which is
// written back to run.
func (j *Journal) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	categories := run.Categories
	if categories == nil {
		categories = map[string]CategoryResult{}
	}
	cats, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	_, err = j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, hostname, started_at, duration_ms, error, categories_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Hostname,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.Duration.Milliseconds(),
		run.Error,
		string(cats),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, hostname, started_at, duration_ms, error, categories_json
		 FROM runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Purge deletes runs started more than olderThan ago.
func (j *Journal) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := j.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		startedAt  string
		durationMS int64
		cats       string
	)
	if err := row.Scan(&run.ID, &run.Hostname, &startedAt, &durationMS, &run.Error, &cats); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	if err := json.Unmarshal([]byte(cats), &run.Categories); err != nil {
		return nil, fmt.Errorf("decode categories of run %s: %w", run.ID, err)
	}
	return &run, nil
}
