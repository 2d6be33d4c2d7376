package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the uniform response body every endpoint returns. The shape
// is part of the contract with the frontend client and must not drift.
type Envelope struct {
	OK       bool    `json:"ok"`
	Status   int     `json:"status"`
	Redirect *string `json:"redirect"`
	Message  *string `json:"message"`
	Data     any     `json:"data"`
	Error    *string `json:"error"`
}

// EnvelopeOption customizes an Envelope before it is sent.
type EnvelopeOption func(*Envelope)

// WithRedirect sets the redirect target the frontend should navigate to.
func WithRedirect(target string) EnvelopeOption {
	return func(e *Envelope) { e.Redirect = &target }
}

// WithMessage sets the human-readable message.
func WithMessage(message string) EnvelopeOption {
	return func(e *Envelope) { e.Message = &message }
}

// WithData sets the payload object.
func WithData(data any) EnvelopeOption {
	return func(e *Envelope) { e.Data = data }
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response",
			"error", err,
			"trace_id", GetTraceID(r.Context()))
	}
}

// RespondOK writes a success envelope with the given status code.
func RespondOK(w http.ResponseWriter, r *http.Request, status int, opts ...EnvelopeOption) {
	env := Envelope{OK: true, Status: status}
	for _, opt := range opts {
		opt(&env)
	}
	RespondWithJSON(w, r, status, env)
}

// RespondWithError writes a failure envelope with the given status code
// and error message, and logs it with the trace ID for correlation.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, opts ...EnvelopeOption) {
	env := Envelope{OK: false, Status: status, Error: &message}
	for _, opt := range opts {
		opt(&env)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response",
		slog.Int("status_code", status),
		slog.String("message", message),
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, env)
}
