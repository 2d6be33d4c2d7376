package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// exportHeader is the fixed CSV header for task exports.
var exportHeader = []string{"id", "title", "description", "due_date", "status"}

// TaskExportService serializes a user's tasks to CSV.
type TaskExportService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskExportService creates a new TaskExportService.
func NewTaskExportService(tasks store.TaskStore, logger *slog.Logger) *TaskExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskExportService{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_export_service")),
	}
}

// ExportUserTasks renders the user's tasks as CSV text: the fixed header
// followed by one row per task in the store's listing order. A user with
// no tasks yields exactly the header row.
func (s *TaskExportService) ExportUserTasks(ctx context.Context, userID int64) result.Result[string] {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list tasks for export",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return result.Err[string](err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	// CRLF line endings, the conventional CSV wire format.
	w.UseCRLF = true

	if err := w.Write(exportHeader); err != nil {
		return result.Err[string](exportError(err))
	}
	for _, task := range tasks {
		row := []string{
			strconv.FormatInt(task.ID, 10),
			task.Title,
			task.Description,
			task.DueDate,
			string(task.Status),
		}
		if err := w.Write(row); err != nil {
			return result.Err[string](exportError(err))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return result.Err[string](exportError(err))
	}

	s.logger.Debug("exported tasks",
		slog.Int64("user_id", userID),
		slog.Int("count", len(tasks)))
	return result.Ok(buf.String())
}

func exportError(err error) error {
	return fmt.Errorf("%w: CSV serialization failed: %v", domain.ErrInfrastructure, err)
}
