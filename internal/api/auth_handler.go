// Package api contains the HTTP handlers. Handlers are thin translators:
// they decode and validate payloads, call a service or store, and render
// the result into the shared response envelope.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	accounts   *service.AccountService
	jwtService auth.JWTService
	validator  *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts *service.AccountService, jwtService auth.JWTService) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}

	res := h.accounts.Register(r.Context(), req.Username, req.Email, req.Password, req.PasswordConfirmation)
	if res.IsErr() {
		err := res.UnwrapErr()
		shared.RespondWithError(w, r, statusForError(err), err.Error(),
			shared.WithMessage("Registration failed"))
		return
	}

	shared.RespondOK(w, r, http.StatusCreated,
		shared.WithRedirect("/login"),
		shared.WithMessage("Registration successful"),
		shared.WithData(res.Unwrap()))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}

	res := h.accounts.Authenticate(r.Context(), req.Identifier, req.Password)
	if res.IsErr() {
		// One message for every credential failure.
		shared.RespondWithError(w, r, statusForError(res.UnwrapErr()), "Invalid credentials")
		return
	}
	user := res.Unwrap()

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondOK(w, r, http.StatusOK,
		shared.WithRedirect("/dashboard"),
		shared.WithMessage("Login successful"),
		shared.WithData(LoginData{Token: token, User: user}))
}
