package store

import (
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Common store errors used across all store implementations. Not-found and
// duplicate errors are business-rule violations and wrap domain.ErrDomain;
// constraint violations the entity layer should have caught wrap
// domain.ErrInfrastructure.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants wrap it.
	ErrNotFound = fmt.Errorf("%w: entity not found", domain.ErrDomain)

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity. Entity-specific variants wrap it.
	ErrDuplicate = fmt.Errorf("%w: entity already exists", domain.ErrDomain)

	// ErrInvalidEntity is returned when the store rejects an entity the
	// domain layer should have caught: a check, not-null, or foreign key
	// constraint violation. Reaching it means the entity validation was
	// bypassed, so it is an infrastructure failure rather than a
	// validation failure.
	ErrInvalidEntity = fmt.Errorf("%w: invalid entity", domain.ErrInfrastructure)

	// ErrRowMissing is returned when a row that was just inserted or
	// updated cannot be read back.
	ErrRowMissing = fmt.Errorf("%w: row missing after write", domain.ErrInfrastructure)

	// Entity-specific "not found" errors.

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	// Entity-specific "duplicate" errors.

	// ErrUsernameExists indicates the username is already taken.
	ErrUsernameExists = fmt.Errorf("%w: username already taken", ErrDuplicate)

	// ErrEmailExists indicates the email is already taken.
	ErrEmailExists = fmt.Errorf("%w: email already taken", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with
// additional context about the entity and operation involved.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "task")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v",
			e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
