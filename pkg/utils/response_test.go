package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-backend/internal/apperrors"
)

func TestJSONWritesSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"available_copies": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestJSONPaginatedIncludesBlock(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONPaginated(rec, http.StatusOK, []string{"a"}, Pagination{Page: 2, Limit: 20, Total: 45, TotalPages: 3})

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.Page)
	assert.Equal(t, 45, env.Pagination.Total)
	assert.Equal(t, 3, env.Pagination.TotalPages)
}

func TestErrorMapsKindsToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.NotFound("film", 7), http.StatusNotFound, "not_found"},
		{apperrors.Conflict("no copies available", "film", 7), http.StatusConflict, "conflict"},
		{apperrors.InvalidState("film already returned", "rental", 3), http.StatusBadRequest, "invalid_state"},
		{apperrors.Validation("title is required"), http.StatusBadRequest, "validation"},
		{errors.New("socket closed"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, tc.code, string(env.Error.Kind))
	}
}

func TestInternalErrorDetailNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: password authentication failed for user"))

	assert.NotContains(t, rec.Body.String(), "password")
}
