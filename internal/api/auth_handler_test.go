package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Username:             "alice",
		Email:                "alice@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.OK)
	assert.Equal(t, http.StatusCreated, body.Status)
	require.NotNil(t, body.Redirect)
	assert.Equal(t, "/login", *body.Redirect)
	require.NotNil(t, body.Message)
	assert.Equal(t, "Registration successful", *body.Message)
	assert.Nil(t, body.Error)
}

func TestRegisterEndpointErrors(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice", "alice@example.com")

	cases := []struct {
		name       string
		req        RegisterRequest
		wantStatus int
	}{
		{
			"duplicate username",
			RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123", PasswordConfirmation: "password123"},
			http.StatusConflict,
		},
		{
			"duplicate email",
			RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "password123", PasswordConfirmation: "password123"},
			http.StatusConflict,
		},
		{
			"confirmation mismatch",
			RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "password123", PasswordConfirmation: "different"},
			http.StatusBadRequest,
		},
		{
			"short password",
			RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "short", PasswordConfirmation: "short"},
			http.StatusBadRequest,
		},
		{
			"missing fields",
			RegisterRequest{Username: "bob"},
			http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/auth/register", "", tc.req)
			assert.Equal(t, tc.wantStatus, rec.Code)

			body := decodeEnvelope(t, rec)
			assert.False(t, body.OK)
			assert.NotNil(t, body.Error)
		})
	}
}

func TestRegisterEndpointMalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t, "alice", "alice@example.com")

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Identifier: "alice",
		Password:   "password123",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.OK)
	require.NotNil(t, body.Redirect)
	assert.Equal(t, "/dashboard", *body.Redirect)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok, "data should be an object, got %T", body.Data)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	// The returned token is accepted by the protected routes.
	rec = env.do(t, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	user, ok := data["user"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, userID, user["id"])
	_, hasHash := user["hashed_password"]
	assert.False(t, hasHash, "login response must not carry the password hash")
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice", "alice@example.com")

	for _, req := range []LoginRequest{
		{Identifier: "alice", Password: "wrong-password"},
		{Identifier: "nobody", Password: "password123"},
	} {
		rec := env.do(t, http.MethodPost, "/api/auth/login", "", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decodeEnvelope(t, rec)
		assert.False(t, body.OK)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Invalid credentials", *body.Error)
	}
}
