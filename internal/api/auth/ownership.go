package auth

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
)

// AuthorizeMutation allows a mutation only when the resource has a recorded
// owner equal to the caller. A nil return means allowed.
func AuthorizeMutation(resourceOwnerID, callerID string) error {
	owner := canonicalID(resourceOwnerID)
	caller := canonicalID(callerID)
	if owner == "" || caller == "" || owner != caller {
		return apperr.Forbidden("You are not authorized to modify this resource")
	}
	return nil
}

// canonicalID normalizes UUIDs to their lowercase hyphenated form and trims
// anything else.
func canonicalID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}
