package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedError(t *testing.T) {
	err := Clone(ErrEmptyRoster, "no active committee members")
	got := FromError(err)
	assert.Equal(t, "EMPTY_ROSTER", got.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, got.Status)
	assert.Equal(t, "no active committee members", got.Message)
	assert.Equal(t, "empty roster", ErrEmptyRoster.Message)
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("connection refused")
	got := FromError(cause)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("tx aborted")
	err := Wrap(cause, ErrPersistence.Code, ErrPersistence.Status, "failed to commit duty schedule")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "tx aborted")
	assert.Nil(t, FromError(nil))
}
