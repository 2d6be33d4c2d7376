// Package service contains the application services orchestrating the
// stores: account registration/authentication and task export.
package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// AccountService handles user authentication and registration.
type AccountService struct {
	users  store.UserStore
	db     *sql.DB
	logger *slog.Logger
}

// NewAccountService creates a new AccountService. db may be nil when the
// user store is not SQL-backed; registration then runs without a
// surrounding transaction.
func NewAccountService(users store.UserStore, db *sql.DB, logger *slog.Logger) *AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		users:  users,
		db:     db,
		logger: logger.With(slog.String("component", "account_service")),
	}
}

// Authenticate verifies the given identifier (username or email) and
// password. Any credential failure, whether the account is missing or the
// password wrong, yields the same invalid-credentials error so account
// existence is not leaked.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) result.Result[*domain.User] {
	user, err := s.users.LoadForAuth(ctx, identifier)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("authentication attempt for unknown identifier")
			return result.Err[*domain.User](domain.ErrInvalidCredentials)
		}
		s.logger.Error("failed to load user for authentication",
			slog.String("error", err.Error()))
		return result.Err[*domain.User](err)
	}

	if !s.users.VerifyPassword(user, password) {
		s.logger.Debug("password verification failed",
			slog.Int64("user_id", user.ID))
		return result.Err[*domain.User](domain.ErrInvalidCredentials)
	}

	// The hash has served its purpose; never hand it past this point.
	user.HashedPassword = ""

	s.logger.Info("user authenticated", slog.Int64("user_id", user.ID))
	return result.Ok(user)
}

// Register creates a new account. A mismatched password confirmation fails
// immediately without touching the store; otherwise the store's Register
// result is propagated unchanged.
func (s *AccountService) Register(ctx context.Context, username, email, password, confirmation string) result.Result[*domain.User] {
	if password != confirmation {
		return result.Err[*domain.User](domain.ErrPasswordsDoNotMatch)
	}

	if s.db == nil {
		return s.users.Register(ctx, username, email, password)
	}

	// Run the registration's existence checks and insert in one
	// transaction. The store's unique indexes remain the last word on
	// uniqueness under concurrent registration.
	var res result.Result[*domain.User]
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		res = s.users.WithTx(tx).Register(ctx, username, email, password)
		if res.IsErr() {
			return res.UnwrapErr()
		}
		return nil
	})
	if err != nil {
		if res.IsErr() {
			// The store's error, already categorized.
			return res
		}
		// Begin or commit failed after a successful register call.
		s.logger.Error("registration transaction failed",
			slog.String("error", err.Error()))
		return result.Err[*domain.User](err)
	}

	return res
}
