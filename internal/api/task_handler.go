package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task CRUD and export requests. All routes require an
// authenticated user; tasks belonging to other users are reported as not
// found so task existence is never leaked across accounts.
type TaskHandler struct {
	tasks    store.TaskStore
	exporter *service.TaskExportService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks store.TaskStore, exporter *service.TaskExportService) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		exporter: exporter,
	}
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.tasks.ListByUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	shared.RespondOK(w, r, http.StatusOK, shared.WithData(TaskListData{Tasks: tasks}))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	taskID, err := pathTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := h.ownedTask(r, taskID, userID)
	if err != nil {
		shared.RespondWithError(w, r, statusForError(err), err.Error())
		return
	}

	shared.RespondOK(w, r, http.StatusOK, shared.WithData(task))
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req TaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	res := h.tasks.Create(r.Context(), req.Title, req.Description, req.DueDate,
		domain.TaskStatus(req.Status), userID)
	if res.IsErr() {
		err := res.UnwrapErr()
		shared.RespondWithError(w, r, statusForError(err), err.Error(),
			shared.WithMessage("Task creation failed"))
		return
	}

	shared.RespondOK(w, r, http.StatusCreated,
		shared.WithRedirect("/dashboard"),
		shared.WithMessage("Task created successfully"),
		shared.WithData(TaskData{TaskID: res.Unwrap().ID}))
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	taskID, err := pathTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req TaskRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if _, err := h.ownedTask(r, taskID, userID); err != nil {
		shared.RespondWithError(w, r, statusForError(err), err.Error(),
			shared.WithMessage("Task update failed"))
		return
	}

	res := h.tasks.Update(r.Context(), taskID, req.Title, req.Description, req.DueDate,
		domain.TaskStatus(req.Status), userID)
	if res.IsErr() {
		err := res.UnwrapErr()
		shared.RespondWithError(w, r, statusForError(err), err.Error(),
			shared.WithMessage("Task update failed"))
		return
	}

	shared.RespondOK(w, r, http.StatusOK,
		shared.WithRedirect("/dashboard"),
		shared.WithMessage("Task updated successfully"),
		shared.WithData(TaskData{TaskID: res.Unwrap().ID}))
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	taskID, err := pathTaskID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if _, err := h.ownedTask(r, taskID, userID); err != nil {
		shared.RespondWithError(w, r, statusForError(err), err.Error())
		return
	}

	if err := h.tasks.Delete(r.Context(), taskID); err != nil {
		shared.RespondWithError(w, r, statusForError(err), err.Error())
		return
	}

	shared.RespondOK(w, r, http.StatusOK,
		shared.WithRedirect("/dashboard"),
		shared.WithMessage("Task deleted successfully"))
}

// ExportTasks handles GET /api/tasks/export, returning the user's tasks as
// a CSV download.
func (h *TaskHandler) ExportTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	res := h.exporter.ExportUserTasks(r.Context(), userID)
	if res.IsErr() {
		shared.RespondWithError(w, r, http.StatusInternalServerError, res.UnwrapErr().Error(),
			shared.WithMessage("Task export failed"))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=tasks.csv`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(res.Unwrap())); err != nil {
		// The status line is already written; all we can do is log.
		logger.FromContext(r.Context()).Error("failed to write export",
			slog.String("error", err.Error()))
	}
}

// ownedTask loads the task and verifies ownership. A task owned by another
// user is reported as not found.
func (h *TaskHandler) ownedTask(r *http.Request, taskID, userID int64) (*domain.Task, error) {
	task, err := h.tasks.GetByID(r.Context(), taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func pathTaskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
