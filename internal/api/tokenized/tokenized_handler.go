package tokenized

import (
	"net/http"

	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/api/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary		List recently tokenized jobs
// @Tags			tokenized-jobs
// @Produce		json
// @Success		200	{array}		View					"Tokenized jobs"
// @Failure		500	{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/tokenized-jobs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListRecent(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, views)
}

// Create godoc
// @Summary		Tokenize a job
// @Description	Links a job to an SPL token address. Each job can be tokenized once.
// @Tags			tokenized-jobs
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			request	body		CreateInput				true	"Job and token address"
// @Success		201		{object}	View					"Tokenized job"
// @Failure		400		{object}	response.ErrorResponse	"Bad request - invalid input"
// @Failure		401		{object}	response.ErrorResponse	"Unauthorized"
// @Failure		404		{object}	response.ErrorResponse	"Job not found"
// @Failure		409		{object}	response.ErrorResponse	"Job already tokenized"
// @Failure		500		{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/tokenized-jobs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.UserFromContext(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var in CreateInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, err)
		return
	}

	view, err := h.service.Create(r.Context(), caller, in)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, view)
}
