package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/result"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskStore is a map-backed implementation of store.TaskStore.
// Listing order is ascending by ID, which matches insertion order since
// IDs are assigned monotonically.
type TaskStore struct {
	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
// The in-memory store has no transactions; it returns itself.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return s
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copy := *task
	return &copy, nil
}

// ListAll implements store.TaskStore.ListAll
func (s *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(*domain.Task) bool { return true }), nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *TaskStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(func(t *domain.Task) bool { return t.UserID == userID }), nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task] {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := domain.NewTask(s.nextID, title, description, dueDate, status, userID)
	if err != nil {
		return result.Err[*domain.Task](err)
	}

	s.nextID++
	s.tasks[task.ID] = task

	copy := *task
	return result.Ok(&copy)
}

// Update implements store.TaskStore.Update
// Ownership is not rewritten: the stored task keeps its original owner,
// matching the postgres UPDATE which omits user_id.
func (s *TaskStore) Update(ctx context.Context, id int64, title, description, dueDate string, status domain.TaskStatus, userID int64) result.Result[*domain.Task] {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := domain.NewTask(id, title, description, dueDate, status, userID)
	if err != nil {
		return result.Err[*domain.Task](err)
	}

	existing, ok := s.tasks[id]
	if !ok {
		return result.Err[*domain.Task](store.ErrTaskNotFound)
	}
	task.UserID = existing.UserID
	s.tasks[id] = task

	copy := *task
	return result.Ok(&copy)
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

// DeleteByUser removes every task owned by the given user. It mirrors the
// ON DELETE CASCADE behavior of the postgres schema.
func (s *TaskStore) DeleteByUser(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, task := range s.tasks {
		if task.UserID == userID {
			delete(s.tasks, id)
		}
	}
}

// collect returns copies of tasks matching the filter, ordered by ID.
// Callers must hold the mutex.
func (s *TaskStore) collect(match func(*domain.Task) bool) []*domain.Task {
	tasks := []*domain.Task{}
	for _, task := range s.tasks {
		if match(task) {
			copy := *task
			tasks = append(tasks, &copy)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}
