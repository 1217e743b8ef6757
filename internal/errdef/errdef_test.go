package errdef_test

import (
	"errors"
	"testing"

	"github.com/snap-party/snapparty/internal/errdef"

	"github.com/stretchr/testify/assert"
)

func TestIsBadRequest(t *testing.T) {
	assert.False(t, errdef.IsBadRequest(errors.New("some error")))
	assert.True(t, errdef.IsBadRequest(errdef.NewBadRequest("some error")))
}

func TestIsDuplicated(t *testing.T) {
	assert.False(t, errdef.IsDuplicated(errors.New("some error")))
	assert.True(t, errdef.IsDuplicated(errdef.NewDuplicated("some error")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.False(t, errdef.IsUnauthorized(errors.New("some error")))
	assert.True(t, errdef.IsUnauthorized(errdef.NewUnauthorized("some error")))
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, errdef.IsNotFound(errors.New("some error")))
	assert.True(t, errdef.IsNotFound(errdef.NewNotFound("some error")))
}

func TestIsConflict(t *testing.T) {
	assert.False(t, errdef.IsConflict(errors.New("some error")))
	assert.True(t, errdef.IsConflict(errdef.NewConflict("some error")))
}

func TestIsUnsupportedMediaType(t *testing.T) {
	assert.False(t, errdef.IsUnsupportedMediaType(errors.New("some error")))
	assert.True(t, errdef.IsUnsupportedMediaType(errdef.NewUnsupportedMediaType("some error")))
}

func TestIsUnavailable(t *testing.T) {
	assert.False(t, errdef.IsUnavailable(errors.New("some error")))
	assert.True(t, errdef.IsUnavailable(errdef.NewUnavailable("some error")))
}

func TestWrappedErrorsKeepTheirKind(t *testing.T) {
	err := errdef.NewNotFound("event not found by join code %q", "abc")
	wrapped := errors.Join(errors.New("lookup failed"), err)
	assert.True(t, errdef.IsNotFound(wrapped))
	assert.False(t, errdef.IsConflict(wrapped))
}
