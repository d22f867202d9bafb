package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// TaskService orchestrates the task store and the listing cache with
// cache-aside semantics: reads go through the cache, every mutation hits
// the store first and then evicts the owner's cached listing. Cache
// failures are logged and swallowed on both paths; the store is always
// the authority.
type TaskService struct {
	taskStore store.TaskStore
	cache     ListingCache
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
// Pass a NoopListingCache when no cache backend is configured.
func NewTaskService(
	taskStore store.TaskStore,
	cache ListingCache,
	logger *slog.Logger,
) (*TaskService, error) {
	if taskStore == nil {
		return nil, errors.New("task store cannot be nil")
	}
	if cache == nil {
		return nil, errors.New("listing cache cannot be nil (use NewNoopListingCache)")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		taskStore: taskStore,
		cache:     cache,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// ListTasks returns all tasks owned by ownerID, serving from the cache
// when possible. On a miss (or cache failure) the listing is read from
// the store and the cache repopulated best-effort.
func (s *TaskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, hit, err := s.cache.GetListing(ctx, ownerID)
	if err != nil {
		// Cache trouble never fails a read; fall through to the store.
		log.Warn("listing cache lookup failed, falling back to store",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
	} else if hit {
		log.Debug("listing cache hit", slog.String("owner_id", ownerID.String()))
		return tasks, nil
	}

	tasks, err = s.taskStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if err := s.cache.SetListing(ctx, ownerID, tasks); err != nil {
		log.Warn("failed to populate listing cache",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
	} else {
		log.Debug("listing cache miss, data cached",
			slog.String("owner_id", ownerID.String()))
	}

	return tasks, nil
}

// CreateTask creates a task owned by ownerID. An empty description is
// allowed and an empty status defaults to pending. The owner's cached
// listing is evicted after the store write.
func (s *TaskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	name, description, status string,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, name, description, status)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidateListing(ctx, ownerID)
	return task, nil
}

// UpdateTask updates the name, description, and status of the task
// matching (id, ownerID). Returns store.ErrTaskNotFound when no row
// matches, whether the task does not exist or belongs to another user.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	id, ownerID uuid.UUID,
	name, description, status string,
) error {
	if name == "" {
		return domain.ErrEmptyTaskName
	}
	if status == "" {
		status = domain.TaskStatusPending
	}

	affected, err := s.taskStore.UpdateOwned(ctx, id, ownerID, name, description, status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	s.invalidateListing(ctx, ownerID)
	return nil
}

// DeleteTask removes the task matching (id, ownerID). Returns
// store.ErrTaskNotFound when no row matches, whether the task does not
// exist or belongs to another user.
func (s *TaskService) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	affected, err := s.taskStore.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	s.invalidateListing(ctx, ownerID)
	return nil
}

// invalidateListing evicts the owner's cached listing after a successful
// store mutation. Eviction failure leaves a stale-but-bounded entry and
// must not fail the mutation, so the error is only logged.
func (s *TaskService) invalidateListing(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Warn("failed to invalidate listing cache",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
	}
}
