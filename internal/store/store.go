// Package store declares the persistence contracts used by the API layer.
// Implementations live in the mysql and memory subpackages; each write is
// atomic per record.
package store

import (
	"context"
	"errors"

	"github.com/hsm-gustavo/jobboard/internal/db"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type UserStore interface {
	// CreateUser returns ErrDuplicate when the wallet address already exists.
	CreateUser(ctx context.Context, u *db.User) error
	GetUserByID(ctx context.Context, id string) (*db.User, error)
	GetUserByWallet(ctx context.Context, walletAddress string) (*db.User, error)
}

type JobStore interface {
	CreateJob(ctx context.Context, j *db.Job) error
	GetJob(ctx context.Context, id string) (*db.Job, error)
	// ListJobs returns jobs newest first.
	ListJobs(ctx context.Context, filter db.JobFilter) ([]db.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

type TokenizedJobStore interface {
	// CreateTokenizedJob returns ErrDuplicate when the job is already tokenized
	// and ErrNotFound when the job no longer exists.
	CreateTokenizedJob(ctx context.Context, t *db.TokenizedJob) error
	GetTokenizedJobByJobID(ctx context.Context, jobID string) (*db.TokenizedJob, error)
	// ListTokenizedJobs returns records newest first.
	ListTokenizedJobs(ctx context.Context, limit int) ([]db.TokenizedJob, error)
}

// Store groups every collection behind one handle.
type Store interface {
	UserStore
	JobStore
	TokenizedJobStore
}
