package api

import (
	"time"

	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

// RegisterResponse defines the successful response for the registration
// endpoint.
type RegisterResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
// Description and status are optional; they default to an empty string
// and "pending" respectively.
type CreateTaskRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// CreateTaskResponse defines the successful response for the task
// creation endpoint.
type CreateTaskResponse struct {
	TaskID  uuid.UUID `json:"task_id"`
	Message string    `json:"message"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// Updates are full replacements of the mutable fields.
type UpdateTaskRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// TaskResponse represents a single task in API responses.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageResponse is a minimal acknowledgement body for mutations that
// return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}
