// Package result provides a generic success/error container used as the
// return type for operations that can fail in an expected way. It replaces
// error-tuple juggling at the repository and service boundaries with an
// explicit tagged value: a Result holds exactly one of a value or an error,
// never both and never neither.
package result

import "fmt"

// Result holds either a success value of type T or an error.
// The zero value is not meaningful; construct instances with Ok or Err.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok constructs a successful Result holding the given value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err constructs a failed Result holding the given error.
// Passing a nil error is a programmer error and panics, since the Result
// would otherwise be neither success nor failure.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}
	return Result[T]{err: err}
}

// IsOk reports whether the Result holds a success value.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// IsErr reports whether the Result holds an error.
func (r Result[T]) IsErr() bool {
	return !r.ok
}

// Unwrap returns the success value.
// It panics if the Result holds an error; callers must check IsOk first.
func (r Result[T]) Unwrap() T {
	if !r.ok {
		panic(fmt.Sprintf("result: Unwrap called on Err: %v", r.err))
	}
	return r.value
}

// UnwrapOr returns the success value, or the given default if the Result
// holds an error.
func (r Result[T]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// UnwrapErr returns the error.
// It panics if the Result holds a success value.
func (r Result[T]) UnwrapErr() error {
	if r.ok {
		panic("result: UnwrapErr called on Ok")
	}
	return r.err
}
