package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/rs/zerolog/log"
)

// MaxBodyBytes bounds request bodies; job logos arrive inline as base64.
const MaxBodyBytes = 10 << 20

type ErrorResponse struct {
	Error   string `json:"error" example:"unauthorized"`
	Message string `json:"message,omitempty" example:"Invalid or expired token"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Job deleted successfully"`
}

func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error on encoding response")
	}
}

// Error writes err using its apperr kind. Internal faults are logged with
// their cause; the client only sees the generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	message := "Internal server error"
	if appErr, ok := apperr.As(err); ok {
		message = appErr.Message
	}

	if kind == apperr.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}

	JSON(w, apperr.Status(kind), ErrorResponse{Error: errorLabel(kind), Message: message})
}

func errorLabel(kind apperr.Kind) string {
	switch kind {
	case apperr.KindBadRequest:
		return "bad request"
	case apperr.KindUnauthorized:
		return "unauthorized"
	case apperr.KindForbidden:
		return "forbidden"
	case apperr.KindNotFound:
		return "not found"
	case apperr.KindConflict:
		return "conflict"
	default:
		return "server error"
	}
}

// Decode reads a single JSON object from the request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.BadRequest("Request body too large")
		}
		return apperr.Wrap(err, apperr.KindBadRequest, "Invalid request body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("Invalid request body: unexpected trailing data")
	}
	return nil
}
