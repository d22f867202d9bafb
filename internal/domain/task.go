package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task validation errors.
var (
	ErrEmptyTaskID   = errors.New("task ID cannot be empty")
	ErrEmptyTaskName = errors.New("task name cannot be empty")
	ErrEmptyOwnerID  = errors.New("task owner ID cannot be empty")
)

// TaskStatusPending is the status assigned to newly created tasks when
// the caller does not provide one.
const TaskStatusPending = "pending"

// Task represents a single to-do item owned by exactly one user.
// Ownership is immutable: every read and mutation is scoped by
// (ID, OwnerID) at the store layer.
type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by ownerID. An empty status defaults
// to TaskStatusPending; the description may be empty.
// Returns an error if validation fails.
func NewTask(ownerID uuid.UUID, name, description, status string) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyOwnerID
	}
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	return nil
}
