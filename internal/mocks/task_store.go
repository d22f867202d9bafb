package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in memory keyed by ID and honors the
// ownership filter the way the real store does.
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListByOwnerFn func(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error)
	CreateFn      func(ctx context.Context, task *domain.Task) error
	UpdateOwnedFn func(ctx context.Context, id, ownerID uuid.UUID, name, description, status string) (int64, error)
	DeleteOwnedFn func(ctx context.Context, id, ownerID uuid.UUID) (int64, error)

	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	ListError   error
	CreateError error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// ListByOwner implements the TaskStore interface
func (m *MockTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]domain.Task, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0)
	for _, task := range m.Tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// UpdateOwned implements the TaskStore interface
func (m *MockTaskStore) UpdateOwned(
	ctx context.Context,
	id, ownerID uuid.UUID,
	name, description, status string,
) (int64, error) {
	if m.UpdateOwnedFn != nil {
		return m.UpdateOwnedFn(ctx, id, ownerID, name, description, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return 0, nil
	}

	task.Name = name
	task.Description = description
	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	return 1, nil
}

// DeleteOwned implements the TaskStore interface
func (m *MockTaskStore) DeleteOwned(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (int64, error) {
	if m.DeleteOwnedFn != nil {
		return m.DeleteOwnedFn(ctx, id, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.Tasks[id]
	if !exists || task.OwnerID != ownerID {
		return 0, nil
	}

	delete(m.Tasks, id)
	return 1, nil
}
