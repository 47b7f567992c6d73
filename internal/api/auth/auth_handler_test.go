package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hsm-gustavo/jobboard/internal/api/user"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler *AuthHandler
	service *AuthService
	store   *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := memory.New()
	tokens, err := NewTokenService("test-secret", DefaultTokenTTL)
	require.NoError(t, err)
	svc := NewAuthService(user.NewUserService(st, nil), tokens)
	return &testEnv{handler: NewAuthHandler(svc), service: svc, store: st}
}

func (e *testEnv) login(t *testing.T, wallet string) WalletAuthResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/wallet", strings.NewReader(`{"walletAddress":"`+wallet+`"}`))
	rec := httptest.NewRecorder()
	e.handler.WalletAuth(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp WalletAuthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func (e *testEnv) me(token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.handler.AuthMiddleware(http.HandlerFunc(e.handler.Me)).ServeHTTP(rec, req)
	return rec
}

func TestWalletAuth_ThenMe(t *testing.T) {
	env := newTestEnv(t)

	login := env.login(t, "Wallet123")
	require.NotNil(t, login.User)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "Wallet123", login.User.WalletAddress)

	rec := env.me("Bearer " + login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, login.User.ID, me.User.ID)
	assert.Equal(t, "Wallet123", me.User.WalletAddress)
}

func TestWalletAuth_ResponseShape(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/wallet", strings.NewReader(`{"walletAddress":"Wallet123"}`))
	rec := httptest.NewRecorder()
	env.handler.WalletAuth(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body, "token")

	u, ok := body["user"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"id", "walletAddress", "name", "email", "profilePicture", "createdAt"} {
		assert.Contains(t, u, key)
	}
	assert.Nil(t, u["name"])
	assert.NotContains(t, u, "updatedAt")
}

func TestWalletAuth_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	first := env.login(t, "Wallet123")
	second := env.login(t, "Wallet123")
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, env.store.UserCount("Wallet123"))
}

func TestWalletAuth_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	for name, body := range map[string]string{
		"missing address": `{}`,
		"empty address":   `{"walletAddress":""}`,
		"invalid json":    `{"walletAddress":`,
		"wrong type":      `{"walletAddress":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/wallet", strings.NewReader(body))
			rec := httptest.NewRecorder()
			env.handler.WalletAuth(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMe_Unauthorized(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "Wallet123")

	for name, header := range map[string]string{
		"no header":      "",
		"wrong scheme":   "Basic " + login.Token,
		"lowercase":      "bearer " + login.Token,
		"missing token":  "Bearer ",
		"invalid token":  "Bearer not.a.jwt",
		"extra segments": "Bearer " + login.Token + " extra",
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.me(header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMe_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "Wallet123")

	env.service.Tokens.now = func() time.Time { return time.Now().Add(DefaultTokenTTL + time.Hour) }
	rec := env.me("Bearer " + login.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_UserMissing(t *testing.T) {
	env := newTestEnv(t)

	token, err := env.service.Tokens.Issue(&db.User{ID: "ghost", WalletAddress: "nobody"})
	require.NoError(t, err)

	rec := env.me("Bearer " + token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMe_StaleIDFallsBackToWallet(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "Wallet123")

	token, err := env.service.Tokens.Issue(&db.User{ID: "stale-id", WalletAddress: "Wallet123"})
	require.NoError(t, err)

	rec := env.me("Bearer " + token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, login.User.ID, me.User.ID)
}

func TestMe_WithoutMiddleware(t *testing.T) {
	env := newTestEnv(t)
	login := env.login(t, "Wallet123")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	env.handler.Me(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
