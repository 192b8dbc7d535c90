package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIStatus_Messages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		detail string
		want   string
	}{
		{"not found", 404, "", "unable to load listing: endpoint not found"},
		{"server error", 500, "boom", "unable to load listing: server error"},
		{"other client error", 422, "", "unable to load listing: client error (422)"},
		{"bad request", 400, "", "unable to load listing: client error (400)"},
		{"unknown status with detail", 503, "maintenance", "unable to load listing: maintenance"},
		{"unknown status without detail", 503, "", "unable to load listing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := APIStatus(tt.status, "unable to load listing", tt.detail)
			assert.Equal(t, tt.want, err.Message)
			assert.Equal(t, tt.status, err.Status)
			assert.True(t, Is(err, ErrAPI))
		})
	}
}

func TestError_Is_MatchesByCode(t *testing.T) {
	assert.True(t, Is(Network("connection refused"), ErrNetwork))
	assert.True(t, Is(Validation("name is required"), ErrValidation))
	assert.False(t, Is(Network("connection refused"), ErrAPI))
}

func TestError_WithCause_Unwraps(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := ErrNetwork.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
