// Package history keeps a local audit trail of pipeline runs so
// operators can compare outcomes after editing the rule table. Failures
// here are logged by callers and never fail the batch.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jonesrussell/curator/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP NOT NULL,
	rule_version  TEXT NOT NULL,
	documents     INTEGER NOT NULL,
	listing_pages INTEGER NOT NULL,
	articles      INTEGER NOT NULL,
	candidates    INTEGER NOT NULL,
	accepted      INTEGER NOT NULL,
	rejected      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS rejections (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       INTEGER NOT NULL REFERENCES runs(id),
	candidate_id TEXT NOT NULL,
	source_id    TEXT NOT NULL,
	title        TEXT NOT NULL,
	reason       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rejections_run ON rejections(run_id);
`

// Run is one recorded pipeline run.
type Run struct {
	ID           int64     `db:"id"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
	RuleVersion  string    `db:"rule_version"`
	Documents    int       `db:"documents"`
	ListingPages int       `db:"listing_pages"`
	Articles     int       `db:"articles"`
	Candidates   int       `db:"candidates"`
	Accepted     int       `db:"accepted"`
	Rejected     int       `db:"rejected"`
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sqlx.DB
}

// Open opens, and if necessary creates, the history database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun appends one run together with its rejections.
func (s *Store) RecordRun(ctx context.Context, run Run, rejections []domain.Rejection) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			started_at, finished_at, rule_version,
			documents, listing_pages, articles,
			candidates, accepted, rejected
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.RuleVersion,
		run.Documents, run.ListingPages, run.Articles,
		run.Candidates, run.Accepted, run.Rejected,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, r := range rejections {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO rejections (run_id, candidate_id, source_id, title, reason)
			VALUES (?, ?, ?, ?, ?)`,
			runID, r.CandidateID, r.SourceID, r.Title, r.Reason,
		); err != nil {
			return fmt.Errorf("insert rejection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// LastRuns returns the most recent runs, newest first.
func (s *Store) LastRuns(ctx context.Context, limit int) ([]Run, error) {
	runs := make([]Run, 0, limit)
	err := s.db.SelectContext(ctx, &runs, `
		SELECT id, started_at, finished_at, rule_version,
		       documents, listing_pages, articles,
		       candidates, accepted, rejected
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

// RejectionsForRun returns the rejections recorded for one run.
func (s *Store) RejectionsForRun(ctx context.Context, runID int64) ([]domain.Rejection, error) {
	rows := make([]domain.Rejection, 0)
	err := s.db.SelectContext(ctx, &rows, `
		SELECT candidate_id, source_id, title, reason
		FROM rejections
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rejections: %w", err)
	}
	return rows, nil
}
