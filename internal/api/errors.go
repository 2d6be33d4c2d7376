package api

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// statusForError translates a core error into the HTTP status code the
// envelope carries. The core never sees HTTP; this mapping is the API
// layer's translation step.
func statusForError(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case store.IsDuplicateError(err):
		return http.StatusConflict
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case domain.IsAuthenticationError(err):
		return http.StatusUnauthorized
	case domain.IsDomainError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
