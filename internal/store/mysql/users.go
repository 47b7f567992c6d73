package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store"
)

const userColumns = `id, wallet_address, name, email, profile_picture, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *db.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, wallet_address, name, email, profile_picture, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.WalletAddress, nullString(u.Name), nullString(u.Email), nullString(u.ProfilePicture), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isDuplicate(err) {
			return store.ErrDuplicate
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*db.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (s *Store) GetUserByWallet(ctx context.Context, walletAddress string) (*db.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE wallet_address = ?`, walletAddress)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*db.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var u db.User
	var name, email, profilePicture sql.NullString
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.WalletAddress, &name, &email, &profilePicture, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	u.Name = stringPtr(name)
	u.Email = stringPtr(email)
	u.ProfilePicture = stringPtr(profilePicture)
	return &u, nil
}
