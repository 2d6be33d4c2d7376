package store

import (
	"context"
	"database/sql"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
)

// TaskStore defines the interface for task data persistence.
//
// Create and Update validate through the domain factory before touching the
// store, so only a fully valid Task is ever written. The store's own
// constraints are a second line of defense: a constraint violation reaching
// the store surfaces as an infrastructure-category error rather than a
// validation error.
type TaskStore interface {
	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListAll retrieves every task in the store regardless of owner.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user, in
	// store-defined order.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Create validates and persists a new task, returning the stored task
	// with its assigned ID.
	Create(ctx context.Context, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task]

	// Update validates and rewrites every field of an existing task.
	// A missing task yields ErrTaskNotFound, detected via zero rows
	// affected.
	Update(ctx context.Context, id int64, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task]

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
