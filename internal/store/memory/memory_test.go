package memory

import (
	"context"
	"testing"
	"time"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_UniqueWallet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &db.User{ID: "u-1", WalletAddress: "w"}))
	err := s.CreateUser(ctx, &db.User{ID: "u-2", WalletAddress: "w"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Equal(t, 1, s.UserCount("w"))

	u, err := s.GetUserByWallet(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	_, err = s.GetUserByID(ctx, "u-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListJobs_FilterAndOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()

	jobs := []db.Job{
		{ID: "a", Title: "Rust dev", Description: "x", Category: db.CategoryWebDeveloper, CreatedAt: base},
		{ID: "b", Title: "Logo", Description: "Needs a RUST logo", Category: db.CategoryLogoMaker, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Title: "Go dev", Description: "y", Category: db.CategoryWebDeveloper, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range jobs {
		require.NoError(t, s.CreateJob(ctx, &jobs[i]))
	}

	all, err := s.ListJobs(ctx, db.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	rust, err := s.ListJobs(ctx, db.JobFilter{Search: "rust"})
	require.NoError(t, err)
	require.Len(t, rust, 2)
	assert.Equal(t, "b", rust[0].ID)

	web, err := s.ListJobs(ctx, db.JobFilter{Category: db.CategoryWebDeveloper, Limit: 1})
	require.NoError(t, err)
	require.Len(t, web, 1)
	assert.Equal(t, "c", web[0].ID)
}

func TestDeleteJob_RemovesTokenization(t *testing.T) {
	s := New()
	ctx := context.Background()

	assert.ErrorIs(t, s.CreateTokenizedJob(ctx, &db.TokenizedJob{ID: "t0", JobID: "j"}), store.ErrNotFound)

	require.NoError(t, s.CreateJob(ctx, &db.Job{ID: "j"}))
	require.NoError(t, s.CreateTokenizedJob(ctx, &db.TokenizedJob{ID: "t", JobID: "j"}))
	assert.ErrorIs(t, s.CreateTokenizedJob(ctx, &db.TokenizedJob{ID: "t2", JobID: "j"}), store.ErrDuplicate)

	require.NoError(t, s.DeleteJob(ctx, "j"))
	assert.ErrorIs(t, s.DeleteJob(ctx, "j"), store.ErrNotFound)

	_, err := s.GetTokenizedJobByJobID(ctx, "j")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetUserByID(ctx, "u")
	assert.ErrorIs(t, err, context.Canceled)
}
