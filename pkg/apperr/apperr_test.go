package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Field("year", "must be at least 1886"), http.StatusUnprocessableEntity},
		{Unauthenticated("Invalid credentials"), http.StatusUnauthorized},
		{Forbidden("only clients can review"), http.StatusForbidden},
		{NotFound("car"), http.StatusNotFound},
		{Conflict("username already taken"), http.StatusConflict},
		{BadRequest("invalid token"), http.StatusBadRequest},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Status(), c.err.Message)
	}
}

func TestFrom_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("car"))

	e := From(wrapped)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, "car not found", e.Message)
	assert.True(t, Is(wrapped, KindNotFound))
}

func TestFrom_PlainErrorIsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	e := From(cause)

	assert.Equal(t, KindInternal, e.Kind)
	assert.Equal(t, "Internal server error", e.Message)
	assert.ErrorIs(t, e, cause)
}
