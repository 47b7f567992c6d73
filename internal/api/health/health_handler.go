package health

import (
	"context"
	"net/http"
	"time"

	"github.com/hsm-gustavo/jobboard/internal/api/response"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether a backing service is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Status struct {
	Status  string `json:"status" example:"online"`
	Message string `json:"message" example:"API is working correctly"`
}

type Handler struct {
	db      Pinger
	timeout time.Duration
}

// NewHandler returns a health handler. A nil db reports online without a
// storage check, as with the in-memory store.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db, timeout: 2 * time.Second}
}

// HealthHandler godoc
// @Summary		Health check endpoint
// @Description	Check if the API is running and its database is reachable
// @Tags			health
// @Produce		json
// @Success		200	{object}	Status	"API is healthy"
// @Failure		503	{object}	Status	"Database unreachable"
// @Router			/health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			log.Error().Err(err).Msg("Health check failed, database unreachable")
			response.JSON(w, http.StatusServiceUnavailable, Status{
				Status:  "degraded",
				Message: "Database is unreachable",
			})
			return
		}
	}

	response.JSON(w, http.StatusOK, Status{
		Status:  "online",
		Message: "API is working correctly",
	})
}
