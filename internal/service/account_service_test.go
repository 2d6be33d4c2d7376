package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/memory"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	users := memory.NewUserStore(auth.NewBcryptHasher(4))
	return NewAccountService(users, nil, nil)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	res := svc.Register(ctx, "alice", "alice@example.com", "password123", "password123")
	require.True(t, res.IsOk(), "unexpected error: %v", res.UnwrapOr(nil))
	registered := res.Unwrap()
	assert.True(t, registered.IsAdmin)

	// By username.
	res = svc.Authenticate(ctx, "alice", "password123")
	require.True(t, res.IsOk())
	user := res.Unwrap()
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.HashedPassword, "authenticate must not return the hash")

	// By email.
	res = svc.Authenticate(ctx, "alice@example.com", "password123")
	require.True(t, res.IsOk())
}

func TestRegisterPasswordConfirmationMismatch(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	res := svc.Register(ctx, "alice", "alice@example.com", "password123", "different")
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.UnwrapErr(), domain.ErrPasswordsDoNotMatch)
	assert.True(t, domain.IsDomainError(res.UnwrapErr()))
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	require.True(t, svc.Register(ctx, "alice", "alice@example.com", "password123", "password123").IsOk())

	// Unknown identifier and wrong password collapse to the same error.
	res := svc.Authenticate(ctx, "nobody", "password123")
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.UnwrapErr(), domain.ErrInvalidCredentials)

	res = svc.Authenticate(ctx, "alice", "wrong-password")
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.UnwrapErr(), domain.ErrInvalidCredentials)
	assert.True(t, domain.IsAuthenticationError(res.UnwrapErr()))
}
