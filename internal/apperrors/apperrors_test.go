package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetKind(t *testing.T) {
	assert.Equal(t, KindNotFound, NotFound("film", 7).Kind)
	assert.Equal(t, KindConflict, Conflict("no copies available", "film", 7).Kind)
	assert.Equal(t, KindInvalidState, InvalidState("already returned", "rental", 3).Kind)
	assert.Equal(t, KindValidation, Validation("title is required").Kind)
	assert.Equal(t, KindInternal, Internal(errors.New("boom")).Kind)
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := NotFound("film", 7)
	wrapped := fmt.Errorf("renting: %w", err)

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestFromFallsBackToInternal(t *testing.T) {
	plain := errors.New("connection reset")
	appErr := From(plain)
	require.NotNil(t, appErr)
	assert.Equal(t, KindInternal, appErr.Kind)

	known := Conflict("no copies available", "film", 7)
	assert.Same(t, known, From(fmt.Errorf("outer: %w", known)))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed")
	appErr := Internal(cause)

	assert.NotContains(t, appErr.Message, "password")
	assert.ErrorIs(t, appErr, cause)
}
