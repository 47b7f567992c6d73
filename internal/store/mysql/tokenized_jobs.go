package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
)

const tokenizedJobColumns = `id, job_id, spl_token_address, created_by, created_at`

func (s *Store) CreateTokenizedJob(ctx context.Context, t *db.TokenizedJob) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tokenized_jobs (`+tokenizedJobColumns+`) VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.JobID, t.SPLTokenAddress, t.CreatedBy, t.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return store.ErrDuplicate
		}
		if isMissingParent(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) GetTokenizedJobByJobID(ctx context.Context, jobID string) (*db.TokenizedJob, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var t db.TokenizedJob
	err := s.db.QueryRowContext(ctx,
		`SELECT `+tokenizedJobColumns+` FROM tokenized_jobs WHERE job_id = ?`, jobID).
		Scan(&t.ID, &t.JobID, &t.SPLTokenAddress, &t.CreatedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &t, nil
}

func (s *Store) ListTokenizedJobs(ctx context.Context, limit int) ([]db.TokenizedJob, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tokenizedJobColumns+` FROM tokenized_jobs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []db.TokenizedJob{}
	for rows.Next() {
		var t db.TokenizedJob
		if err := rows.Scan(&t.ID, &t.JobID, &t.SPLTokenAddress, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
