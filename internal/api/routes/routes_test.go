package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/api/response"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/hsm-gustavo/jobboard/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const splAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

type server struct {
	t       *testing.T
	handler http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()
	tokens, err := auth.NewTokenService("routes-test-secret", auth.DefaultTokenTTL)
	require.NoError(t, err)
	return &server{t: t, handler: SetupRoutes(Deps{Store: memory.New(), Tokens: tokens})}
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *server) login(wallet string) (string, *db.User) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/wallet", "", map[string]string{"walletAddress": wallet})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp auth.WalletAuthResponse
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token, resp.User
}

func (s *server) createJob(token string) db.Job {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/jobs", token, map[string]string{
		"title":       "Need a logo",
		"description": "Meme coin logo",
		"category":    string(db.CategoryLogoMaker),
		"salary":      "1 SOL",
		"contactInfo": "@founder",
		"logo":        "data:image/png;base64,AAAA",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var j db.Job
	require.NoError(s.t, json.NewDecoder(rec.Body).Decode(&j))
	return j
}

func TestHealth(t *testing.T) {
	rec := newServer(t).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/jobs"},
		{http.MethodDelete, "/api/jobs/some-id"},
		{http.MethodPost, "/api/tokenized-jobs"},
	} {
		rec := s.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		var body response.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.NotEmpty(t, body.Message)
	}
}

func TestLoginThenMe(t *testing.T) {
	s := newServer(t)
	token, u := s.login("WalletA")

	rec := s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me auth.MeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&me))
	assert.Equal(t, u.ID, me.User.ID)
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	s := newServer(t)
	ownerToken, owner := s.login("WalletOwner")
	otherToken, _ := s.login("WalletOther")

	j := s.createJob(ownerToken)
	assert.Equal(t, owner.ID, j.CreatedBy)

	rec := s.do(http.MethodDelete, "/api/jobs/"+j.ID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/jobs/"+j.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "job must remain after a forbidden delete")

	rec = s.do(http.MethodDelete, "/api/jobs/"+j.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msg response.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msg))
	assert.Equal(t, "Job deleted successfully", msg.Message)

	rec = s.do(http.MethodGet, "/api/jobs/"+j.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListJobs(t *testing.T) {
	s := newServer(t)
	token, _ := s.login("WalletA")
	s.createJob(token)

	rec := s.do(http.MethodGet, "/api/jobs?search=LOGO&category=All", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var jobs []db.Job
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&jobs))
	assert.Len(t, jobs, 1)

	rec = s.do(http.MethodGet, "/api/jobs?category=Web%20Developer", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&jobs))
	assert.Empty(t, jobs)
}

func TestTokenizeFlow(t *testing.T) {
	s := newServer(t)
	token, _ := s.login("WalletA")
	j := s.createJob(token)

	rec := s.do(http.MethodPost, "/api/tokenized-jobs", token, map[string]string{
		"jobId":           j.ID,
		"splTokenAddress": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/tokenized-jobs", token, map[string]string{
		"jobId":           j.ID,
		"splTokenAddress": splAddress,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, j.ID, created["jobId"])
	assert.Equal(t, splAddress, created["splTokenAddress"])
	require.IsType(t, map[string]any{}, created["job"])

	// a different caller cannot tokenize the same job again
	otherToken, _ := s.login("WalletB")
	rec = s.do(http.MethodPost, "/api/tokenized-jobs", otherToken, map[string]string{
		"jobId":           j.ID,
		"splTokenAddress": splAddress,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/tokenized-jobs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestTokenizeMissingJob(t *testing.T) {
	s := newServer(t)
	token, _ := s.login("WalletA")

	rec := s.do(http.MethodPost, "/api/tokenized-jobs", token, map[string]string{
		"jobId":           "does-not-exist",
		"splTokenAddress": splAddress,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
