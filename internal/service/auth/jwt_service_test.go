package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-at-least-32-chars"

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testSecret, time.Hour)

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateTokenExpired(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testSecret, -time.Minute)

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testSecret, time.Hour)
	other := NewJWTService("another-secret-of-sufficient-length!", time.Hour)

	token, err := other.GenerateToken(ctx, 42)
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	ctx := context.Background()
	svc := NewJWTService(testSecret, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
