// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Base error categories. Every expected failure in the application wraps
// exactly one of these, so callers can classify errors with errors.Is
// without depending on the concrete failure.
var (
	// ErrValidation is the category for malformed input: bad formats,
	// out-of-range lengths, unknown enum values.
	ErrValidation = errors.New("validation failed")

	// ErrDomain is the category for business-rule violations: uniqueness
	// conflicts, missing entities, mismatched password confirmation.
	ErrDomain = errors.New("domain rule violated")

	// ErrInfrastructure is the category for store-level failures:
	// constraint violations that bypassed entity validation, serialization
	// failures, a row missing after a write.
	ErrInfrastructure = errors.New("infrastructure failure")

	// ErrAuthentication is the category for credential verification
	// failures. It is deliberately unified: callers never learn whether
	// the account was missing or the password wrong.
	ErrAuthentication = errors.New("authentication failed")
)

// Validation errors.
var (
	ErrInvalidUsername = fmt.Errorf(
		"%w: username must be at least 3 characters and contain only letters, digits, underscores, and hyphens",
		ErrValidation)
	ErrInvalidEmail = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyTitle   = fmt.Errorf("%w: title is required", ErrValidation)
	ErrTitleTooLong = fmt.Errorf("%w: title must be 100 characters or less", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf(
		"%w: description must be 500 characters or less", ErrValidation)
	ErrInvalidDueDate = fmt.Errorf("%w: due date must be a valid date", ErrValidation)
	ErrInvalidStatus  = fmt.Errorf(
		"%w: status must be one of: 'To Do', 'In Progress', 'Completed'", ErrValidation)
	ErrInvalidTaskUserID = fmt.Errorf("%w: user ID must be a positive integer", ErrValidation)
	ErrInvalidPassword   = fmt.Errorf(
		"%w: password must be at least 8 characters long", ErrValidation)
)

// Domain errors raised outside the stores. Store-level business failures
// (not found, duplicates) live in the store package and wrap ErrDomain.
var (
	ErrPasswordsDoNotMatch = fmt.Errorf("%w: passwords do not match", ErrDomain)
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for any authentication failure,
	// regardless of whether the account exists.
	ErrInvalidCredentials = fmt.Errorf(
		"%w: please check your credentials", ErrAuthentication)
)

// IsValidationError reports whether err is in the validation category.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDomainError reports whether err is in the domain category.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

// IsInfrastructureError reports whether err is in the infrastructure category.
func IsInfrastructureError(err error) bool {
	return errors.Is(err, ErrInfrastructure)
}

// IsAuthenticationError reports whether err is in the authentication category.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}
