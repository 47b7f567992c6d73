package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
)

const jobColumns = `id, title, description, category, salary, contact_info, logo, created_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*db.Job, error) {
	var (
		j         db.Job
		createdBy sql.NullString
	)
	if err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Category, &j.Salary,
		&j.ContactInfo, &j.Logo, &createdBy, &j.CreatedAt); err != nil {
		return nil, err
	}
	j.CreatedBy = createdBy.String
	return &j, nil
}

func (s *Store) CreateJob(ctx context.Context, j *db.Job) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	createdBy := sql.NullString{String: j.CreatedBy, Valid: j.CreatedBy != ""}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Description, string(j.Category), j.Salary, j.ContactInfo, j.Logo, createdBy, j.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*db.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	j, err := scanJob(s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return j, nil
}

func (s *Store) ListJobs(ctx context.Context, filter db.JobFilter) ([]db.Job, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		where = append(where, `(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`)
		p := likePattern(filter.Search)
		args = append(args, p, p)
	}
	if filter.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, string(filter.Category))
	}

	query := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	jobs := []db.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return jobs, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
