// Package memory implements the store interfaces on in-process maps.
// It mirrors the semantics of the postgres implementations and exists as a
// lightweight substitute for tests and local experiments. Each store owns
// its data: construct one per test and discard it at the end.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

const minPasswordLength = 8

// UserStore is a map-backed implementation of store.UserStore keyed by
// username. A mutex guards the map so concurrent test servers stay safe.
type UserStore struct {
	mu     sync.Mutex
	hasher auth.PasswordHasher
	users  map[string]*domain.User
	tasks  *TaskStore
	nextID int64
}

// NewUserStore creates an empty in-memory user store.
func NewUserStore(hasher auth.PasswordHasher) *UserStore {
	return &UserStore{
		hasher: hasher,
		users:  make(map[string]*domain.User),
		nextID: 1,
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// CascadeTasksTo links a task store so deleting a user also removes their
// tasks, mirroring the ON DELETE CASCADE on tasks.user_id in the postgres
// schema.
func (s *UserStore) CascadeTasksTo(tasks *TaskStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
}

// WithTx implements store.UserStore.WithTx
// The in-memory store has no transactions; it returns itself.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return s
}

// FindByUsername implements store.UserStore.FindByUsername
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return withoutHash(user), nil
}

// FindByUsernameOrEmail implements store.UserStore.FindByUsernameOrEmail
func (s *UserStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.lookup(identifier)
	if user == nil {
		return nil, store.ErrUserNotFound
	}
	return withoutHash(user), nil
}

// LoadForAuth implements store.UserStore.LoadForAuth
func (s *UserStore) LoadForAuth(ctx context.Context, identifier string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.lookup(identifier)
	if user == nil {
		return nil, store.ErrUserNotFound
	}
	copy := *user
	return &copy, nil
}

// VerifyPassword implements store.UserStore.VerifyPassword
func (s *UserStore) VerifyPassword(user *domain.User, password string) bool {
	if user == nil || user.HashedPassword == "" {
		return false
	}
	return s.hasher.Compare(user.HashedPassword, password) == nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return withoutHash(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// ListAll implements store.UserStore.ListAll
func (s *UserStore) ListAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []*domain.User{}
	for _, user := range s.users {
		users = append(users, withoutHash(user))
	}
	return users, nil
}

// Register implements store.UserStore.Register
// Semantics match the postgres store: the first user in an empty store is
// granted admin status and skips the uniqueness checks.
func (s *UserStore) Register(ctx context.Context, username, email, password string) result.Result[*domain.User] {
	s.mu.Lock()
	defer s.mu.Unlock()

	firstUser := len(s.users) == 0

	if !firstUser {
		if _, taken := s.users[username]; taken {
			return result.Err[*domain.User](store.ErrUsernameExists)
		}
		for _, user := range s.users {
			if user.Email == email {
				return result.Err[*domain.User](store.ErrEmailExists)
			}
		}
	}

	if len(password) < minPasswordLength {
		return result.Err[*domain.User](domain.ErrInvalidPassword)
	}

	user, err := domain.NewUser(s.nextID, username, email, "", firstUser)
	if err != nil {
		return result.Err[*domain.User](err)
	}

	pwHash, err := s.hasher.Hash(password)
	if err != nil {
		return result.Err[*domain.User](
			fmt.Errorf("%w: password hashing failed: %v", domain.ErrInfrastructure, err))
	}
	user.HashedPassword = pwHash

	s.nextID++
	s.users[username] = user

	return result.Ok(withoutHash(user))
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.lookup(identifier)
	if user == nil {
		return store.ErrUserNotFound
	}
	delete(s.users, user.Username)
	if s.tasks != nil {
		s.tasks.DeleteByUser(user.ID)
	}
	return nil
}

// lookup finds a user by username or email. Callers must hold the mutex.
func (s *UserStore) lookup(identifier string) *domain.User {
	if user, ok := s.users[identifier]; ok {
		return user
	}
	for _, user := range s.users {
		if user.Email == identifier {
			return user
		}
	}
	return nil
}

func withoutHash(user *domain.User) *domain.User {
	copy := *user
	copy.HashedPassword = ""
	return &copy
}
