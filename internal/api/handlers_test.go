package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	apimiddleware "github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/memory"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// testEnv wires the handlers against in-memory stores the way the server
// wires them against Postgres.
type testEnv struct {
	router     chi.Router
	users      *memory.UserStore
	tasks      *memory.TaskStore
	jwtService auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserStore(auth.NewBcryptHasher(4))
	tasks := memory.NewTaskStore()
	users.CascadeTasksTo(tasks)
	jwtService := auth.NewJWTService("test-secret-that-is-at-least-32-chars", time.Hour)

	accounts := service.NewAccountService(users, nil, nil)
	exporter := service.NewTaskExportService(tasks, nil)

	authHandler := NewAuthHandler(accounts, jwtService)
	taskHandler := NewTaskHandler(tasks, exporter)
	authMW := apimiddleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks/export", taskHandler.ExportTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})
	})

	return &testEnv{
		router:     r,
		users:      users,
		tasks:      tasks,
		jwtService: jwtService,
	}
}

// do sends a request through the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user directly against the store and returns a
// valid token for it.
func (e *testEnv) registerUser(t *testing.T, username, email string) (int64, string) {
	t.Helper()

	res := e.users.Register(context.Background(), username, email, "password123")
	require.True(t, res.IsOk(), "registration failed: %v", res.UnwrapOr(nil))
	userID := res.Unwrap().ID

	token, err := e.jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	return userID, token
}

// decodeEnvelope parses the response body into the shared envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()

	var env shared.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
