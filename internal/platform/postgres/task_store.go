package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// taskColumns selects task fields with the due date rendered back to the
// ISO calendar date string tasks carry in the domain.
const taskColumns = `id, user_id, title, description, due_date::text, status`

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task domain.Task
	var status string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, MapError(err)
	}

	task.Status = domain.TaskStatus(status)
	return &task, nil
}

// ListAll implements store.TaskStore.ListAll
func (s *PostgresTaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY id`, userID)
}

// Create implements store.TaskStore.Create
// The entity is validated before the insert; the table's check constraints
// are a second line of defense and surface as infrastructure errors.
func (s *PostgresTaskStore) Create(ctx context.Context, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(0, title, description, dueDate, status, userID)
	if err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return result.Err[*domain.Task](err)
	}

	query := `
		INSERT INTO tasks (user_id, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = s.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description, task.DueDate, task.Status,
	).Scan(&id)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return result.Err[*domain.Task](MapError(err))
	}

	created, err := s.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return result.Err[*domain.Task](store.ErrRowMissing)
		}
		return result.Err[*domain.Task](err)
	}

	log.Info("task created",
		slog.Int64("task_id", created.ID),
		slog.Int64("user_id", created.UserID))
	return result.Ok(created)
}

// Update implements store.TaskStore.Update
// Every field is re-validated and rewritten. A missing task is detected
// via zero rows affected.
func (s *PostgresTaskStore) Update(ctx context.Context, id int64, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(id, title, description, dueDate, status, userID)
	if err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return result.Err[*domain.Task](err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4
		WHERE id = $5
	`
	res, err := s.db.ExecContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status, task.ID)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return result.Err[*domain.Task](MapError(err))
	}

	if err := CheckRowsAffected(res, store.ErrTaskNotFound); err != nil {
		return result.Err[*domain.Task](err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return result.Err[*domain.Task](store.ErrRowMissing)
		}
		return result.Err[*domain.Task](err)
	}

	log.Info("task updated", slog.Int64("task_id", updated.ID))
	return result.Ok(updated)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(res, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

func (s *PostgresTaskStore) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		var task domain.Task
		var status string
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.DueDate,
			&status,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		task.Status = domain.TaskStatus(status)
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}
