package job

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
	"github.com/rs/zerolog/log"
)

// ListLimit caps how many jobs a listing returns.
const ListLimit = 20

type JobService struct {
	store store.JobStore
	now   func() time.Time
}

func NewJobService(s store.JobStore) *JobService {
	return &JobService{store: s, now: time.Now}
}

type CreateJobInput struct {
	Title       string `json:"title" example:"Telegram sniper bot"`
	Description string `json:"description" example:"Build a bot that snipes new pairs"`
	Category    string `json:"category" example:"Telegram Bot Developer"`
	Salary      string `json:"salary" example:"2-3 SOL"`
	ContactInfo string `json:"contactInfo" example:"@handle"`
	Logo        string `json:"logo" example:"data:image/png;base64,iVBORw0KGgo..."`
}

func (in CreateJobInput) validate() error {
	required := []struct{ field, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"salary", in.Salary},
		{"contactInfo", in.ContactInfo},
		{"logo", in.Logo},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.BadRequest(r.field + " is required")
		}
	}
	if !db.JobCategory(in.Category).Valid() {
		return apperr.BadRequest("category is not a known job category")
	}
	return nil
}

func (s *JobService) List(ctx context.Context, search, category string) ([]db.Job, error) {
	filter := db.JobFilter{Search: strings.TrimSpace(search), Limit: ListLimit}
	if category != "" && category != "All" {
		filter.Category = db.JobCategory(category)
	}

	jobs, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err, "Failed to fetch jobs")
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*db.Job, error) {
	j, err := s.store.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("Job not found")
		}
		return nil, apperr.Internal(err, "Failed to fetch job")
	}
	return j, nil
}

func (s *JobService) Create(ctx context.Context, caller *db.User, in CreateJobInput) (*db.Job, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	j := &db.Job{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    db.JobCategory(in.Category),
		Salary:      strings.TrimSpace(in.Salary),
		ContactInfo: strings.TrimSpace(in.ContactInfo),
		Logo:        in.Logo,
		CreatedBy:   caller.ID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.CreateJob(ctx, j); err != nil {
		return nil, apperr.Internal(err, "Failed to create job")
	}

	log.Info().Str("job_id", j.ID).Str("user_id", caller.ID).Msg("Job created")
	return j, nil
}

// Delete removes the job if caller is its creator.
func (s *JobService) Delete(ctx context.Context, caller *db.User, id string) error {
	j, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.AuthorizeMutation(j.CreatedBy, caller.ID); err != nil {
		log.Warn().Str("job_id", id).Str("user_id", caller.ID).Msg("Job delete rejected, caller is not the owner")
		return apperr.Forbidden("You are not authorized to delete this job")
	}

	if err := s.store.DeleteJob(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("Job not found")
		}
		return apperr.Internal(err, "Failed to delete job")
	}

	log.Info().Str("job_id", id).Str("user_id", caller.ID).Msg("Job deleted")
	return nil
}
