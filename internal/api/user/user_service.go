package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/cache"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
	"github.com/rs/zerolog/log"
)

// Cache is a best-effort read-through layer in front of the user store.
type Cache interface {
	GetByID(ctx context.Context, id string) (*db.User, error)
	GetByWallet(ctx context.Context, wallet string) (*db.User, error)
	Set(ctx context.Context, u *db.User) error
}

// UserService resolves wallet addresses to durable user records.
type UserService struct {
	store store.UserStore
	cache Cache
	now   func() time.Time
}

// NewUserService builds the resolver. c may be nil to disable caching.
func NewUserService(s store.UserStore, c Cache) *UserService {
	return &UserService{store: s, cache: c, now: time.Now}
}

// Resolve finds the user owning walletAddress, creating it on first sight.
// Surrounding whitespace is not part of the address.
// When two callers race to create the same wallet, the first insert wins
// and the loser re-reads the winner's record.
func (s *UserService) Resolve(ctx context.Context, walletAddress string) (*db.User, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, apperr.BadRequest("Wallet address is required")
	}

	u, err := s.store.GetUserByWallet(ctx, walletAddress)
	if err == nil {
		log.Debug().Str("user_id", u.ID).Msg("Existing user found")
		s.remember(ctx, u)
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Internal(err, "Error retrieving user")
	}

	now := s.now().UTC()
	u = &db.User{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = s.store.CreateUser(ctx, u)
	switch {
	case err == nil:
		log.Info().Str("user_id", u.ID).Msg("New user created")
	case errors.Is(err, store.ErrDuplicate):
		u, err = s.store.GetUserByWallet(ctx, walletAddress)
		if err != nil {
			return nil, apperr.Internal(err, "Could not create or find user")
		}
		log.Debug().Str("user_id", u.ID).Msg("Lost user creation race, using existing record")
	default:
		return nil, apperr.Internal(err, "Error creating user")
	}

	s.remember(ctx, u)
	return u, nil
}

func (s *UserService) LookupByID(ctx context.Context, id string) (*db.User, error) {
	if id == "" {
		return nil, apperr.NotFound("User not found")
	}
	return s.lookup(ctx, id, s.cacheByID, s.store.GetUserByID)
}

func (s *UserService) LookupByWallet(ctx context.Context, walletAddress string) (*db.User, error) {
	if walletAddress == "" {
		return nil, apperr.NotFound("User not found")
	}
	return s.lookup(ctx, walletAddress, s.cacheByWallet, s.store.GetUserByWallet)
}

// LookupIdentity resolves a credential's identity: by id first, then by
// wallet address if the id is stale or its lookup failed. The fallback is
// tried once; if neither resolves the result is NotFound.
func (s *UserService) LookupIdentity(ctx context.Context, id, walletAddress string) (*db.User, error) {
	u, err := s.LookupByID(ctx, id)
	if err == nil {
		return u, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		log.Warn().Err(err).Str("user_id", id).Msg("Lookup by id failed, trying wallet address")
	}

	u, walletErr := s.LookupByWallet(ctx, walletAddress)
	if walletErr != nil {
		return nil, walletErr
	}
	log.Debug().Str("user_id", u.ID).Msg("User found by wallet address")
	return u, nil
}

func (s *UserService) lookup(
	ctx context.Context,
	key string,
	fromCache func(context.Context, string) (*db.User, error),
	fromStore func(context.Context, string) (*db.User, error),
) (*db.User, error) {
	u, err := fromCache(ctx, key)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Warn().Err(err).Msg("User cache read failed")
	}

	u, err = fromStore(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal(err, "Error retrieving user")
	}
	s.remember(ctx, u)
	return u, nil
}

func (s *UserService) cacheByID(ctx context.Context, id string) (*db.User, error) {
	if s.cache == nil {
		return nil, cache.ErrMiss
	}
	return s.cache.GetByID(ctx, id)
}

func (s *UserService) cacheByWallet(ctx context.Context, wallet string) (*db.User, error) {
	if s.cache == nil {
		return nil, cache.ErrMiss
	}
	return s.cache.GetByWallet(ctx, wallet)
}

func (s *UserService) remember(ctx context.Context, u *db.User) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, u); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("Failed to cache user")
	}
}
