package job

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hsm-gustavo/jobboard/internal/api/auth"
	"github.com/hsm-gustavo/jobboard/internal/api/response"
)

type Handler struct {
	service *JobService
}

func NewHandler(service *JobService) *Handler {
	return &Handler{service: service}
}

// ListJobs godoc
// @Summary		List jobs
// @Description	The 20 most recent jobs, optionally filtered by a case-insensitive search on title/description and by category
// @Tags			jobs
// @Produce		json
// @Param			search		query		string					false	"Search term"
// @Param			category	query		string					false	"Category, or All"
// @Success		200			{array}		db.Job					"Jobs"
// @Failure		500			{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/jobs [get]
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobs, err := h.service.List(r.Context(), q.Get("search"), q.Get("category"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, jobs)
}

// GetJob godoc
// @Summary		Get a job
// @Tags			jobs
// @Produce		json
// @Param			id	path		string					true	"Job ID"
// @Success		200	{object}	db.Job					"Job"
// @Failure		404	{object}	response.ErrorResponse	"Job not found"
// @Failure		500	{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

// CreateJob godoc
// @Summary		Create a job
// @Tags			jobs
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			job	body		CreateJobInput			true	"Job data"
// @Success		201	{object}	db.Job					"Job created"
// @Failure		400	{object}	response.ErrorResponse	"Bad request - invalid input"
// @Failure		401	{object}	response.ErrorResponse	"Unauthorized"
// @Failure		500	{object}	response.ErrorResponse	"Internal server error"
// @Router			/api/jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.UserFromContext(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var in CreateJobInput
	if err := response.Decode(w, r, &in); err != nil {
		response.Error(w, r, err)
		return
	}

	j, err := h.service.Create(r.Context(), caller, in)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, j)
}

// DeleteJob godoc
// @Summary		Delete a job
// @Description	Only the job's creator may delete it
// @Tags			jobs
// @Produce		json
// @Security		BearerAuth
// @Param			id	path		string						true	"Job ID"
// @Success		200	{object}	response.MessageResponse	"Job deleted"
// @Failure		401	{object}	response.ErrorResponse		"Unauthorized"
// @Failure		403	{object}	response.ErrorResponse		"Forbidden - not the owner"
// @Failure		404	{object}	response.ErrorResponse		"Job not found"
// @Failure		500	{object}	response.ErrorResponse		"Internal server error"
// @Router			/api/jobs/{id} [delete]
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.UserFromContext(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MessageResponse{Message: "Job deleted successfully"})
}
