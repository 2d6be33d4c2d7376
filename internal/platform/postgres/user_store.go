// Package postgres implements the store interfaces on a PostgreSQL
// database using the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// minPasswordLength is the minimum plaintext password length accepted at
// registration.
const minPasswordLength = 8

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. The connection is initialized and managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresUserStore(db store.DBTX, hasher auth.PasswordHasher, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		hasher: s.hasher,
		logger: s.logger,
	}
}

// FindByUsername implements store.UserStore.FindByUsername
func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, is_admin
		FROM users
		WHERE username = $1
	`
	return s.queryOne(ctx, query, username)
}

// FindByUsernameOrEmail implements store.UserStore.FindByUsernameOrEmail
func (s *PostgresUserStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	query := `
		SELECT id, username, email, is_admin
		FROM users
		WHERE username = $1 OR email = $1
	`
	return s.queryOne(ctx, query, identifier)
}

// LoadForAuth implements store.UserStore.LoadForAuth
// It is the only read that returns the password hash.
func (s *PostgresUserStore) LoadForAuth(ctx context.Context, identifier string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, pw_hash, is_admin
		FROM users
		WHERE username = $1 OR email = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, identifier).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to load user for auth",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}

// VerifyPassword implements store.UserStore.VerifyPassword
func (s *PostgresUserStore) VerifyPassword(user *domain.User, password string) bool {
	if user == nil || user.HashedPassword == "" {
		return false
	}
	return s.hasher.Compare(user.HashedPassword, password) == nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, email, is_admin
		FROM users
		WHERE id = $1
	`
	return s.queryOne(ctx, query, id)
}

// ListAll implements store.UserStore.ListAll
func (s *PostgresUserStore) ListAll(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, username, email, is_admin
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.IsAdmin); err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning user rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return users, nil
}

// Register implements store.UserStore.Register
//
// The first user registered into an empty store is granted admin status and
// skips the uniqueness checks. The pre-insert existence checks give
// friendly errors; the unique indexes on username and email remain the
// final source of truth, so a concurrent registration losing the race is
// still reported as the matching duplicate error.
func (s *PostgresUserStore) Register(ctx context.Context, username, email, password string) result.Result[*domain.User] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		log.Error("failed to count users", slog.String("error", err.Error()))
		return result.Err[*domain.User](MapError(err))
	}
	firstUser := count == 0

	if !firstUser {
		taken, err := s.identifierTaken(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username)
		if err != nil {
			return result.Err[*domain.User](MapError(err))
		}
		if taken {
			return result.Err[*domain.User](store.ErrUsernameExists)
		}

		taken, err = s.identifierTaken(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email)
		if err != nil {
			return result.Err[*domain.User](MapError(err))
		}
		if taken {
			return result.Err[*domain.User](store.ErrEmailExists)
		}
	}

	if len(password) < minPasswordLength {
		return result.Err[*domain.User](domain.ErrInvalidPassword)
	}

	user, err := domain.NewUser(0, username, email, "", firstUser)
	if err != nil {
		log.Warn("user validation failed during registration",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return result.Err[*domain.User](err)
	}

	pwHash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return result.Err[*domain.User](
			fmt.Errorf("%w: password hashing failed: %v", domain.ErrInfrastructure, err))
	}

	query := `
		INSERT INTO users (username, email, pw_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := s.db.QueryRowContext(ctx, query, user.Username, user.Email, pwHash, user.IsAdmin).Scan(&user.ID); err != nil {
		log.Warn("failed to insert user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return result.Err[*domain.User](MapUniqueViolation(err))
	}

	log.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin))
	return result.Ok(user)
}

// Delete implements store.UserStore.Delete
// The user's tasks are removed by the ON DELETE CASCADE on tasks.user_id.
func (s *PostgresUserStore) Delete(ctx context.Context, identifier string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM users WHERE username = $1 OR email = $1`, identifier)
	if err != nil {
		log.Error("failed to delete user", slog.String("error", err.Error()))
		return MapError(err)
	}

	if err := CheckRowsAffected(res, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Info("user deleted")
	return nil
}

// queryOne runs a single-row user query without the password hash.
func (s *PostgresUserStore) queryOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.IsAdmin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to query user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}

func (s *PostgresUserStore) identifierTaken(ctx context.Context, query, value string) (bool, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, query, value).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
