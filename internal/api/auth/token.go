package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/db"
)

const (
	DefaultTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "jobboard"
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

// TokenService issues and validates stateless HS256 credentials binding a
// user id to its wallet address.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) Issue(u *db.User) (string, error) {
	now := s.now()
	claims := db.Claims{
		UserID:        u.ID,
		WalletAddress: u.WalletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    tokenIssuer,
			Subject:   u.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal(err, "Error generating token")
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer and expiry. Every failure,
// including a payload missing id or walletAddress, is Unauthorized.
func (s *TokenService) Validate(tokenStr string) (*db.Claims, error) {
	claims := &db.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(err, apperr.KindUnauthorized, "Token has expired")
		}
		return nil, apperr.Wrap(err, apperr.KindUnauthorized, "Invalid token")
	}
	if !token.Valid {
		return nil, apperr.Unauthorized("Invalid token")
	}
	if claims.UserID == "" || claims.WalletAddress == "" {
		return nil, apperr.Unauthorized("Invalid token payload")
	}
	return claims, nil
}
