package store

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
)

// UserStore defines the interface for user data persistence.
//
// Read operations never return the password hash; LoadForAuth is the single
// exception and exists only for credential verification.
type UserStore interface {
	// FindByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByUsernameOrEmail retrieves a user whose username or email
	// matches the identifier. Returns ErrUserNotFound if no user matches.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)

	// LoadForAuth retrieves a user by username or email including the
	// password hash. Returns ErrUserNotFound if no user matches.
	LoadForAuth(ctx context.Context, identifier string) (*domain.User, error)

	// VerifyPassword compares the given plaintext password against the
	// user's stored hash. The hash comparison is opaque to callers.
	VerifyPassword(user *domain.User, password string) bool

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// ListAll retrieves every user in the store.
	ListAll(ctx context.Context) ([]*domain.User, error)

	// Register creates a new user. If the store is empty the new user is
	// granted admin status and uniqueness checks are skipped (bootstrap);
	// otherwise a username or email collision yields ErrUsernameExists or
	// ErrEmailExists. The password is hashed before
	// storage and the returned user carries no hash.
	Register(ctx context.Context, username, email, password string) result.Result[*domain.User]

	// Delete removes a user matched by username or email, cascading the
	// deletion of their tasks. Returns ErrUserNotFound if no user matches.
	Delete(ctx context.Context, identifier string) error

	// WithTx returns a UserStore bound to the provided transaction so
	// multiple operations can share one transaction.
	WithTx(tx *sql.Tx) UserStore
}
