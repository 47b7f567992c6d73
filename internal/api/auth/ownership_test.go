package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizeMutation(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name    string
		owner   string
		caller  string
		allowed bool
	}{
		{"owner matches", id, id, true},
		{"uuid case-insensitive", strings.ToUpper(id), id, true},
		{"surrounding space", " " + id + " ", id, true},
		{"non-uuid ids equal", "abc", "abc", true},
		{"different caller", id, uuid.NewString(), false},
		{"no owner", "", id, false},
		{"no caller", id, "", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeMutation(tt.owner, tt.caller)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.Is(err, apperr.KindForbidden))
		})
	}
}
