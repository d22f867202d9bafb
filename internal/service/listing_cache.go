package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// ListingCache is a best-effort cache of per-user task listings.
//
// Implementations are read-through collaborators of TaskService: a lookup
// either hits (returning the cached listing) or misses, and mutations
// evict the owner's entry rather than updating it in place. Callers treat
// every error as non-fatal; the task store remains the source of truth.
type ListingCache interface {
	// GetListing returns the cached listing for ownerID. The boolean
	// reports whether the entry was present; an absent entry is not an
	// error.
	GetListing(ctx context.Context, ownerID uuid.UUID) ([]domain.Task, bool, error)

	// SetListing stores the listing for ownerID, replacing any existing
	// entry.
	SetListing(ctx context.Context, ownerID uuid.UUID, tasks []domain.Task) error

	// Invalidate removes the listing for ownerID. Removing an absent
	// entry is not an error.
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// NoopListingCache satisfies ListingCache without caching anything.
// It is used when no cache backend is configured, so the service degrades
// to always-miss instead of growing a nil-check on every call site.
type NoopListingCache struct{}

// NewNoopListingCache creates a new NoopListingCache.
func NewNoopListingCache() *NoopListingCache {
	return &NoopListingCache{}
}

// Ensure NoopListingCache implements ListingCache interface
var _ ListingCache = (*NoopListingCache)(nil)

// GetListing always reports a miss.
func (c *NoopListingCache) GetListing(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]domain.Task, bool, error) {
	return nil, false, nil
}

// SetListing discards the listing.
func (c *NoopListingCache) SetListing(
	ctx context.Context,
	ownerID uuid.UUID,
	tasks []domain.Task,
) error {
	return nil
}

// Invalidate does nothing.
func (c *NoopListingCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return nil
}
