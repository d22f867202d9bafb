package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewListingCache(client, ttl, nil), srv
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("connects via URL", func(t *testing.T) {
		t.Parallel()

		srv := miniredis.RunT(t)
		client, err := NewClient("redis://" + srv.Addr())
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		require.NoError(t, client.Ping(context.Background()).Err())
	})

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("")
		require.Error(t, err)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient("://not-a-url")
		require.Error(t, err)
	})
}

func TestListingCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, 0)
	ctx := context.Background()
	ownerID := uuid.New()

	tasks := []domain.Task{
		{
			ID:      uuid.New(),
			OwnerID: ownerID,
			Name:    "buy milk",
			Status:  domain.TaskStatusPending,
		},
		{
			ID:          uuid.New(),
			OwnerID:     ownerID,
			Name:        "walk dog",
			Description: "before it rains",
			Status:      "done",
		},
	}

	require.NoError(t, cache.SetListing(ctx, ownerID, tasks))

	got, hit, err := cache.GetListing(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 2)
	assert.Equal(t, tasks[0].ID, got[0].ID)
	assert.Equal(t, tasks[1].Description, got[1].Description)
}

func TestListingCacheMiss(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, 0)

	got, hit, err := cache.GetListing(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestListingCacheIsolatedPerOwner(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, 0)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	require.NoError(t, cache.SetListing(ctx, alice, []domain.Task{{ID: uuid.New(), OwnerID: alice, Name: "secret"}}))

	_, hit, err := cache.GetListing(ctx, bob)
	require.NoError(t, err)
	assert.False(t, hit, "one user's listing must not serve another's key")
}

func TestListingCacheInvalidate(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, 0)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, cache.SetListing(ctx, ownerID, []domain.Task{{ID: uuid.New(), OwnerID: ownerID, Name: "stale"}}))
	require.NoError(t, cache.Invalidate(ctx, ownerID))

	_, hit, err := cache.GetListing(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, hit)

	// Deleting an absent key is not an error.
	require.NoError(t, cache.Invalidate(ctx, ownerID))
}

func TestListingCacheTTL(t *testing.T) {
	t.Parallel()

	cache, srv := newTestCache(t, 5*time.Minute)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, cache.SetListing(ctx, ownerID, []domain.Task{}))

	srv.FastForward(5*time.Minute + time.Second)

	_, hit, err := cache.GetListing(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, hit, "entry must expire after the configured TTL")
}

func TestListingCacheCorruptEntryIsMiss(t *testing.T) {
	t.Parallel()

	cache, srv := newTestCache(t, 0)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, srv.Set(listingKey(ownerID), "{not json"))

	got, hit, err := cache.GetListing(ctx, ownerID)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestListingCacheEmptyListing(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache(t, 0)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, cache.SetListing(ctx, ownerID, []domain.Task{}))

	got, hit, err := cache.GetListing(ctx, ownerID)
	require.NoError(t, err)
	assert.True(t, hit, "an empty listing is a hit, not a miss")
	assert.Empty(t, got)
}

func TestListingCacheServerDown(t *testing.T) {
	t.Parallel()

	cache, srv := newTestCache(t, 0)
	srv.Close()

	ctx := context.Background()
	ownerID := uuid.New()

	_, _, err := cache.GetListing(ctx, ownerID)
	require.Error(t, err)
	require.Error(t, cache.SetListing(ctx, ownerID, []domain.Task{}))
	require.Error(t, cache.Invalidate(ctx, ownerID))
}
