package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsSentinelAndCause(t *testing.T) {
	cause := errors.New("connection refused")

	err := Wrap(ErrQueueUnavailable, cause)

	assert.ErrorIs(t, err, ErrQueueUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to enqueue task: connection refused", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(err))
}

func TestWrap_NilCause(t *testing.T) {
	assert.Same(t, ErrTaskNotFound, Wrap(ErrTaskNotFound, nil))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(Wrapf(ErrInvalidTitle, "title must not be empty")))
	assert.Equal(t, http.StatusNotFound, StatusCode(ErrTaskNotFound))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
