package domain

import "time"

// TaskStatus is the fixed three-value task lifecycle enum.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// dueDateLayout is the ISO-8601 calendar date format tasks carry.
const dueDateLayout = "2006-01-02"

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

// Task represents a single item of work owned by one user.
// A Task never exists in an invalid state: all construction goes through
// NewTask, which validates every field atomically.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date"`
	Status      TaskStatus `json:"status"`
	UserID      int64      `json:"user_id"`
}

// NewTask creates a Task after validating every field. The ID is assigned
// by the store; callers pass 0 for a task that has not been persisted yet.
// Rules are checked in a fixed order and the first failure wins:
// title, description, due date, status, owning user ID.
func NewTask(id int64, title, description, dueDate string, status TaskStatus, userID int64) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	if len(description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	if _, err := time.Parse(dueDateLayout, dueDate); err != nil {
		return nil, ErrInvalidDueDate
	}

	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if userID <= 0 {
		return nil, ErrInvalidTaskUserID
	}

	return &Task{
		ID:          id,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
		UserID:      userID,
	}, nil
}
