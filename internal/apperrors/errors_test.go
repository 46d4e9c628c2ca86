package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad limit"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{InvalidToken("expired"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{NotFound("recipe"), http.StatusNotFound},
		{Duplicate("email is already in use"), http.StatusConflict},
		{TooManyRequests("slow down"), http.StatusTooManyRequests},
		{Database(errors.New("connection reset")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "for %v", tt.err)
	}
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("toggling reaction: %w", NotFound("recipe"))
	assert.True(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(err, CodeForbidden))
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestErrorStringIncludesOrigin(t *testing.T) {
	origin := errors.New("duplicate key")
	err := New(CodeDuplicate, "email is already in use", origin)
	assert.Equal(t, "email is already in use: duplicate key", err.Error())
	assert.Equal(t, origin, errors.Unwrap(err))

	assert.Equal(t, "recipe not found", NotFound("recipe").Error())
}
