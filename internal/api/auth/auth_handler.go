package auth

import (
	"net/http"

	"github.com/hsm-gustavo/jobboard/internal/api/response"
	"github.com/hsm-gustavo/jobboard/internal/db"
	"github.com/rs/zerolog/log"
)

// Request/Response structures

type WalletAuthRequest struct {
	WalletAddress string `json:"walletAddress" example:"7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"`
}

type WalletAuthResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type MeResponse struct {
	User *db.User `json:"user"`
}

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// WalletAuth godoc
// @Summary		Authenticate with a wallet address
// @Description	Find or create the user bound to a wallet address and issue a bearer token valid for 7 days
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			body	body		WalletAuthRequest		true	"Wallet address"
// @Success		201		{object}	WalletAuthResponse		"Authenticated"
// @Failure		400		{object}	response.ErrorResponse	"Bad request - missing wallet address"
// @Failure		500		{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/auth/wallet [post]
func (h *AuthHandler) WalletAuth(w http.ResponseWriter, r *http.Request) {
	var req WalletAuthRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	u, token, err := h.service.AuthenticateWallet(r.Context(), req.WalletAddress)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	log.Info().Str("user_id", u.ID).Msg("Wallet authenticated")
	response.JSON(w, http.StatusCreated, WalletAuthResponse{User: u, Token: token})
}

// Me godoc
// @Summary		Get current user
// @Description	Resolve the bearer token to the authenticated user
// @Tags			auth
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MeResponse				"User information retrieved"
// @Failure		401	{object}	response.ErrorResponse	"Unauthorized - invalid or missing token"
// @Failure		404	{object}	response.ErrorResponse	"User not found"
// @Failure		500	{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	// Try the caller injected by AuthMiddleware first
	u, err := UserFromContext(r.Context())
	if err != nil {
		u, err = h.service.Authenticate(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, MeResponse{User: u})
}
