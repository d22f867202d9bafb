// Package rediscache provides a Redis-backed implementation of the
// service.ListingCache interface using go-redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// NewClient returns a configured go-redis client from a URL
// (e.g., redis://localhost:6379/0) and verifies connectivity with a
// short ping.
func NewClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// ListingCache implements service.ListingCache over Redis. Entries are
// JSON-serialized task listings keyed by owner ID, with an optional TTL
// bounding how long an entry can outlive a missed eviction.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewListingCache creates a ListingCache backed by the given client.
// A zero ttl means entries never expire on their own.
func NewListingCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListingCache {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ListingCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "listing_cache")),
	}
}

// Ensure ListingCache implements service.ListingCache interface
var _ service.ListingCache = (*ListingCache)(nil)

// listingKey derives the cache key for a user's task listing.
func listingKey(ownerID uuid.UUID) string {
	return "tasks:" + ownerID.String()
}

// GetListing implements service.ListingCache.GetListing
func (c *ListingCache) GetListing(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]domain.Task, bool, error) {
	payload, err := c.client.Get(ctx, listingKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		// A corrupt entry behaves like a miss; the next SetListing
		// overwrites it.
		c.logger.Warn("discarding undecodable cache entry",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, false, nil
	}

	return tasks, true, nil
}

// SetListing implements service.ListingCache.SetListing
func (c *ListingCache) SetListing(
	ctx context.Context,
	ownerID uuid.UUID,
	tasks []domain.Task,
) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}

	if err := c.client.Set(ctx, listingKey(ownerID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Invalidate implements service.ListingCache.Invalidate
func (c *ListingCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	if err := c.client.Del(ctx, listingKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}
