// Package history persists finished upload jobs to sqlite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vmunix/seedgo/internal/migrations"
	"github.com/vmunix/seedgo/internal/upload"
)

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
	Exec(query string, args ...any) (sql.Result, error)
}

// Store provides access to upload history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle. The schema must already be
// applied.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// TargetRecord is one persisted per-tracker outcome.
type TargetRecord struct {
	Tracker string
	Outcome string
	Reason  string
}

// JobRecord is one persisted upload job.
type JobRecord struct {
	ID          string
	ReleaseName string
	ReleasePath string
	ContentType string
	Overall     string
	StartedAt   time.Time
	FinishedAt  time.Time
	Targets     []TargetRecord
}

// RecordJob persists a finished job and its per-target outcomes in one
// transaction. Satisfies the orchestrator's Recorder.
func (s *Store) RecordJob(ctx context.Context, job *upload.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertJob(tx, job); err != nil {
		return err
	}
	for tracker, outcome := range job.Outcomes {
		if err := insertTarget(tx, job.ID.String(), tracker, outcome); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertJob(q querier, job *upload.Job) error {
	_, err := q.Exec(`
		INSERT INTO upload_jobs (id, release_name, release_path, content_type, overall, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.ID.String(),
		job.Release.Name,
		job.Release.Path,
		job.Release.Type.String(),
		job.Overall.String(),
		job.StartedAt.UTC(),
		job.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func insertTarget(q querier, jobID, tracker string, outcome upload.TargetOutcome) error {
	_, err := q.Exec(`
		INSERT INTO upload_targets (job_id, tracker, outcome, reason)
		VALUES (?, ?, ?, ?)`,
		jobID, tracker, outcome.Kind.String(), outcome.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert target outcome: %w", err)
	}
	return nil
}

// Recent returns the most recently started jobs, newest first, with
// their per-target outcomes attached.
func (s *Store) Recent(ctx context.Context, limit int) ([]JobRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, release_name, release_path, content_type, overall, started_at, finished_at
		FROM upload_jobs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobRecord
	for rows.Next() {
		var j JobRecord
		if err := rows.Scan(&j.ID, &j.ReleaseName, &j.ReleasePath, &j.ContentType, &j.Overall, &j.StartedAt, &j.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range jobs {
		targets, err := s.targetsFor(ctx, jobs[i].ID)
		if err != nil {
			return nil, err
		}
		jobs[i].Targets = targets
	}
	return jobs, nil
}

func (s *Store) targetsFor(ctx context.Context, jobID string) ([]TargetRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tracker, outcome, reason
		FROM upload_targets
		WHERE job_id = ?
		ORDER BY tracker`, jobID)
	if err != nil {
		return nil, fmt.Errorf("query target outcomes: %w", err)
	}
	defer rows.Close()

	var targets []TargetRecord
	for rows.Next() {
		var t TargetRecord
		if err := rows.Scan(&t.Tracker, &t.Outcome, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan target outcome: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
