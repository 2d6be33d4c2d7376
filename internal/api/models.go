package api

import "github.com/taskdeck/taskdeck-api/internal/domain"

// Request/response payloads for the API endpoints.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username             string `json:"username"              validate:"required"`
	Email                string `json:"email"                 validate:"required"`
	Password             string `json:"password"              validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint. Identifier is a
// username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// LoginData is the success payload for the login endpoint.
type LoginData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// TaskRequest defines the payload for task create and update endpoints.
// Every field is sent on update as well; tasks are rewritten whole.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// TaskData is the success payload for task mutations.
type TaskData struct {
	TaskID int64 `json:"task_id"`
}

// TaskListData is the success payload for task listing.
type TaskListData struct {
	Tasks []*domain.Task `json:"tasks"`
}
