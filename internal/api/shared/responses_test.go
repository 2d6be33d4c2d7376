package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondOK(rec, req, http.StatusCreated,
		WithRedirect("/login"),
		WithMessage("Registration successful"),
		WithData(map[string]int{"id": 7}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.OK)
	assert.Equal(t, http.StatusCreated, env.Status)
	require.NotNil(t, env.Redirect)
	assert.Equal(t, "/login", *env.Redirect)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Registration successful", *env.Message)
	assert.Nil(t, env.Error)
}

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(rec, req, http.StatusNotFound, "task not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.OK)
	assert.Equal(t, http.StatusNotFound, env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "task not found", *env.Error)
	assert.Nil(t, env.Redirect)
	assert.Nil(t, env.Message)
	assert.Nil(t, env.Data)
}

func TestEnvelopeKeysAlwaysPresent(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondOK(rec, req, http.StatusOK)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"ok", "status", "redirect", "message", "data", "error"} {
		assert.Contains(t, raw, key)
	}
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = SetTraceID(ctx)
	first := GetTraceID(ctx)
	assert.NotEmpty(t, first)

	// A fresh trace ID per call.
	second := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, first, second)
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), UserIDContextKey, int64(42))
	id, ok := UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	// Zero and negative IDs are not authenticated users.
	ctx = context.WithValue(context.Background(), UserIDContextKey, int64(0))
	_, ok = UserID(ctx)
	assert.False(t, ok)
}
