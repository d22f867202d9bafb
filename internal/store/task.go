package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every owner-scoped operation applies the (id, owner_id) filter inside
// the same SQL statement, never as a separate read-then-check step. The
// affected-row count is how callers learn whether the task existed and
// was owned by the caller; the two cases are deliberately not told apart.
type TaskStore interface {
	// ListByOwner returns all tasks owned by ownerID, newest first.
	// An owner with no tasks yields an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, error)

	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// UpdateOwned sets name, description, and status on the task matching
	// both id and ownerID, returning the number of rows affected (0 or 1).
	UpdateOwned(
		ctx context.Context,
		id, ownerID uuid.UUID,
		name, description, status string,
	) (int64, error)

	// DeleteOwned removes the task matching both id and ownerID,
	// returning the number of rows affected (0 or 1).
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (int64, error)
}
