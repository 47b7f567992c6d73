package tokenized

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
	"github.com/rs/zerolog/log"
)

// RecentLimit is how many tokenized jobs the listing shows.
const RecentLimit = 3

// Base58 alphabet, 32 to 44 characters.
var splAddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ValidSPLAddress reports whether s looks like a Solana token address.
func ValidSPLAddress(s string) bool {
	return splAddressPattern.MatchString(s)
}

type Stores interface {
	store.JobStore
	store.TokenizedJobStore
}

type Service struct {
	store Stores
	now   func() time.Time
}

func NewService(s Stores) *Service {
	return &Service{store: s, now: time.Now}
}

type CreateInput struct {
	JobID           string `json:"jobId" example:"5f0c2a9e-8d1b-4c3e-9a7f-2b6d1e4c8a90"`
	SPLTokenAddress string `json:"splTokenAddress" example:"So11111111111111111111111111111111111111112"`
}

// View is a tokenized job with its job attached.
type View struct {
	db.TokenizedJob
	Job *db.Job `json:"job"`
}

// Create links a job to an SPL token. A job can be tokenized once; any
// authenticated caller may tokenize any job.
func (s *Service) Create(ctx context.Context, caller *db.User, in CreateInput) (*View, error) {
	jobID := strings.TrimSpace(in.JobID)
	address := strings.TrimSpace(in.SPLTokenAddress)
	if jobID == "" || address == "" {
		return nil, apperr.BadRequest("Job ID and SPL token address are required")
	}
	if !ValidSPLAddress(address) {
		return nil, apperr.BadRequest("Invalid SPL token address")
	}

	j, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Job not found")
		}
		return nil, apperr.Internal(err, "Failed to fetch job")
	}

	existing, err := s.store.GetTokenizedJobByJobID(ctx, jobID)
	switch {
	case err == nil && existing != nil:
		return nil, apperr.Conflict("Job is already tokenized")
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Internal(err, "Failed to check tokenization")
	}

	t := db.TokenizedJob{
		ID:              uuid.NewString(),
		JobID:           jobID,
		SPLTokenAddress: address,
		CreatedBy:       caller.ID,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.CreateTokenizedJob(ctx, &t); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return nil, apperr.Conflict("Job is already tokenized")
		case errors.Is(err, store.ErrNotFound):
			// job deleted after the existence check
			return nil, apperr.NotFound("Job not found")
		}
		return nil, apperr.Internal(err, "Failed to tokenize job")
	}

	log.Info().
		Str("job_id", jobID).
		Str("user_id", caller.ID).
		Str("spl_token_address", address).
		Msg("Job tokenized")
	return &View{TokenizedJob: t, Job: j}, nil
}

// ListRecent returns the newest tokenized jobs with their jobs attached.
// Records whose job no longer exists are left out.
func (s *Service) ListRecent(ctx context.Context) ([]View, error) {
	records, err := s.store.ListTokenizedJobs(ctx, RecentLimit)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to fetch tokenized jobs")
	}

	out := make([]View, 0, len(records))
	for _, t := range records {
		j, err := s.store.GetJob(ctx, t.JobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.Debug().Str("tokenized_job_id", t.ID).Str("job_id", t.JobID).Msg("Skipping tokenized job without a job")
				continue
			}
			return nil, apperr.Internal(err, "Failed to fetch tokenized jobs")
		}
		out = append(out, View{TokenizedJob: t, Job: j})
	}
	return out, nil
}
