package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// MockListingCache implements service.ListingCache for testing. The
// default implementation is an in-memory map; error fields let tests
// simulate an unreachable cache on each path independently.
type MockListingCache struct {
	mu      sync.Mutex
	Entries map[uuid.UUID][]domain.Task

	GetError        error
	SetError        error
	InvalidateError error

	// Call counters for asserting the cache-aside protocol ordering.
	GetCalls        int
	SetCalls        int
	InvalidateCalls int
}

// Ensure MockListingCache implements service.ListingCache
var _ service.ListingCache = (*MockListingCache)(nil)

// NewMockListingCache creates a new mock cache with initialized defaults
func NewMockListingCache() *MockListingCache {
	return &MockListingCache{
		Entries: make(map[uuid.UUID][]domain.Task),
	}
}

// GetListing implements the ListingCache interface
func (m *MockListingCache) GetListing(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]domain.Task, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls++
	if m.GetError != nil {
		return nil, false, m.GetError
	}

	tasks, hit := m.Entries[ownerID]
	return tasks, hit, nil
}

// SetListing implements the ListingCache interface
func (m *MockListingCache) SetListing(
	ctx context.Context,
	ownerID uuid.UUID,
	tasks []domain.Task,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}

	m.Entries[ownerID] = tasks
	return nil
}

// Invalidate implements the ListingCache interface
func (m *MockListingCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InvalidateCalls++
	if m.InvalidateError != nil {
		return m.InvalidateError
	}

	delete(m.Entries, ownerID)
	return nil
}
