package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func newTestUserStore() *UserStore {
	// Minimum bcrypt cost keeps the tests fast.
	return NewUserStore(auth.NewBcryptHasher(4))
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	res := s.Register(ctx, "alice", "alice@example.com", "password123")
	require.True(t, res.IsOk(), "unexpected error: %v", res.UnwrapOr(nil))

	first := res.Unwrap()
	assert.Equal(t, int64(1), first.ID)
	assert.True(t, first.IsAdmin, "first registered user must be admin")
	assert.Empty(t, first.HashedPassword, "register must not return the hash")

	res = s.Register(ctx, "bob", "bob@example.com", "password123")
	require.True(t, res.IsOk())
	second := res.Unwrap()
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, second.IsAdmin, "second registered user must not be admin")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	res := s.Register(ctx, "alice", "other@example.com", "password123")
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.UnwrapErr(), store.ErrUsernameExists)
	assert.True(t, domain.IsDomainError(res.UnwrapErr()))

	// The first registration is unaffected.
	user, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	res := s.Register(ctx, "alice2", "alice@example.com", "password123")
	require.True(t, res.IsErr())
	assert.ErrorIs(t, res.UnwrapErr(), store.ErrEmailExists)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	// Bootstrap user so uniqueness checks run but do not interfere.
	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	cases := []struct {
		name     string
		username string
		email    string
		password string
		want     error
	}{
		{"short password", "bob", "bob@example.com", "short", domain.ErrInvalidPassword},
		{"bad username", "b!", "bob@example.com", "password123", domain.ErrInvalidUsername},
		{"bad email", "bob", "bob@invalid", "password123", domain.ErrInvalidEmail},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := s.Register(ctx, tc.username, tc.email, tc.password)
			require.True(t, res.IsErr())
			assert.ErrorIs(t, res.UnwrapErr(), tc.want)
		})
	}
}

func TestLoadForAuthAndVerifyPassword(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	user, err := s.LoadForAuth(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, user.HashedPassword, "LoadForAuth must include the hash")

	assert.True(t, s.VerifyPassword(user, "password123"))
	assert.False(t, s.VerifyPassword(user, "wrong-password"))

	// By email as well.
	byEmail, err := s.LoadForAuth(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.LoadForAuth(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestReadsNeverExposeHash(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	byUsername, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, byUsername.HashedPassword)

	byEither, err := s.FindByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, byEither.HashedPassword)

	byID, err := s.GetByID(ctx, byUsername.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.HashedPassword)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].HashedPassword)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	s := newTestUserStore()

	require.True(t, s.Register(ctx, "alice", "alice@example.com", "password123").IsOk())

	require.NoError(t, s.Delete(ctx, "alice@example.com"))

	_, err := s.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "alice"), store.ErrUserNotFound)
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	ctx := context.Background()
	users := newTestUserStore()
	tasks := NewTaskStore()
	users.CascadeTasksTo(tasks)

	alice := users.Register(ctx, "alice", "alice@example.com", "password123").Unwrap()
	bob := users.Register(ctx, "bob", "bob@example.com", "password123").Unwrap()

	require.True(t, tasks.Create(ctx, "Alice task", "", "2026-09-01", domain.TaskStatusToDo, alice.ID).IsOk())
	require.True(t, tasks.Create(ctx, "Bob task", "", "2026-09-01", domain.TaskStatusToDo, bob.ID).IsOk())

	require.NoError(t, users.Delete(ctx, "alice"))

	remaining, err := tasks.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Bob task", remaining[0].Title)
}
