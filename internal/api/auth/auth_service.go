package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/hsm-gustavo/jobboard/internal/api/user"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/db"
)

type AuthService struct {
	Users  *user.UserService
	Tokens *TokenService
}

func NewAuthService(users *user.UserService, tokens *TokenService) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// AuthenticateWallet finds or creates the wallet's user and issues a
// credential for it.
func (s *AuthService) AuthenticateWallet(ctx context.Context, walletAddress string) (*db.User, string, error) {
	u, err := s.Users.Resolve(ctx, walletAddress)
	if err != nil {
		return nil, "", err
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate turns a request into the calling user:
//
//	no header                 -> Unauthorized
//	header without "Bearer "  -> Unauthorized
//	invalid or expired token  -> Unauthorized
//	valid token, no user      -> NotFound
//	valid token, user found   -> user
func (s *AuthService) Authenticate(r *http.Request) (*db.User, error) {
	tokenStr, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := s.Tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}

	return s.Users.LookupIdentity(r.Context(), claims.UserID, claims.WalletAddress)
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperr.Unauthorized("Missing authorization header")
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", apperr.Unauthorized("Invalid authorization header format")
	}
	return token, nil
}
