package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", Validation("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"conflict", Conflict("User already exists with this email"), http.StatusBadRequest, "User already exists with this email"},
		{"invalid credentials", InvalidCredentials(), http.StatusBadRequest, "Invalid email or password"},
		{"not found", NotFound("Event not found"), http.StatusNotFound, "Event not found"},
		{"internal hides cause", Internal("find events", errors.New("connection reset by peer")), http.StatusInternalServerError, "Internal server error"},
		{"foreign error", errors.New("socket closed"), http.StatusInternalServerError, "Internal server error"},
		{"wrapped app error", fmt.Errorf("controller: %w", NotFound("Event not found")), http.StatusNotFound, "Event not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}

func TestInternal_KeepsCauseForLogs(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := Internal("insert user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "insert user")
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestIs(t *testing.T) {
	assert.True(t, Is(NotFound("x"), KindNotFound))
	assert.False(t, Is(Validation("x"), KindNotFound))
	assert.False(t, Is(nil, KindInternal))
}
