// Package memory is a process-local store.Store. Uniqueness of wallet
// addresses and of tokenized job ids is enforced under a single lock, the
// same guarantees the MySQL schema gives through unique indexes.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
)

type Store struct {
	mu sync.RWMutex

	users          map[string]db.User
	userByWallet   map[string]string
	jobs           map[string]db.Job
	tokenized      map[string]db.TokenizedJob
	tokenizedByJob map[string]string
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:          make(map[string]db.User),
		userByWallet:   make(map[string]string),
		jobs:           make(map[string]db.Job),
		tokenized:      make(map[string]db.TokenizedJob),
		tokenizedByJob: make(map[string]string),
	}
}

func (s *Store) CreateUser(ctx context.Context, u *db.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByWallet[u.WalletAddress]; ok {
		return store.ErrDuplicate
	}
	if _, ok := s.users[u.ID]; ok {
		return store.ErrDuplicate
	}
	s.users[u.ID] = *u
	s.userByWallet[u.WalletAddress] = u.ID
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*db.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByWallet(ctx context.Context, walletAddress string) (*db.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByWallet[walletAddress]
	if !ok {
		return nil, store.ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

// UserCount reports how many users exist for walletAddress. Used by tests
// that check the at-most-one invariant.
func (s *Store) UserCount(walletAddress string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, u := range s.users {
		if u.WalletAddress == walletAddress {
			n++
		}
	}
	return n
}

func (s *Store) CreateJob(ctx context.Context, j *db.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[j.ID]; ok {
		return store.ErrDuplicate
	}
	s.jobs[j.ID] = *j
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*db.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &j, nil
}

func (s *Store) ListJobs(ctx context.Context, filter db.JobFilter) ([]db.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(filter.Search)
	out := []db.Job{}
	for _, j := range s.jobs {
		if filter.Category != "" && j.Category != filter.Category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(j.Title), term) &&
			!strings.Contains(strings.ToLower(j.Description), term) {
			continue
		}
		out = append(out, j)
	}

	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// DeleteJob also removes the job's tokenization, mirroring ON DELETE CASCADE.
func (s *Store) DeleteJob(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.jobs, id)
	if tid, ok := s.tokenizedByJob[id]; ok {
		delete(s.tokenized, tid)
		delete(s.tokenizedByJob, id)
	}
	return nil
}

func (s *Store) CreateTokenizedJob(ctx context.Context, t *db.TokenizedJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[t.JobID]; !ok {
		return store.ErrNotFound
	}
	if _, ok := s.tokenizedByJob[t.JobID]; ok {
		return store.ErrDuplicate
	}
	s.tokenized[t.ID] = *t
	s.tokenizedByJob[t.JobID] = t.ID
	return nil
}

func (s *Store) GetTokenizedJobByJobID(ctx context.Context, jobID string) (*db.TokenizedJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.tokenizedByJob[jobID]
	if !ok {
		return nil, store.ErrNotFound
	}
	t := s.tokenized[id]
	return &t, nil
}

func (s *Store) ListTokenizedJobs(ctx context.Context, limit int) ([]db.TokenizedJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]db.TokenizedJob, 0, len(s.tokenized))
	for _, t := range s.tokenized {
		out = append(out, t)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
