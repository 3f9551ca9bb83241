package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filmoteka/catalog-api/internal/api/metrics"
	"github.com/filmoteka/catalog-api/internal/core/domain"
)

const contentTTL = 5 * time.Minute

// ContentCache caches content detail lookups in Redis.
// Key format: content:<id>, value is the JSON-encoded entry.
type ContentCache struct {
	client *redis.Client
}

// NewContentCache creates a ContentCache wrapping the given Redis client.
func NewContentCache(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// Get returns the cached entry, or (nil, nil) on a miss.
func (c *ContentCache) Get(ctx context.Context, id string) (*domain.Content, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ContentCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var content domain.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		// A corrupt entry is treated as a miss so the caller falls back
		// to the repository and rewrites it.
		metrics.ContentCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.ContentCacheTotal.WithLabelValues("hit").Inc()
	return &content, nil
}

// Set stores the entry (expires after contentTTL).
func (c *ContentCache) Set(ctx context.Context, content *domain.Content) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(content.ID), raw, contentTTL).Err()
}

// Invalidate drops the cached entry after a write.
func (c *ContentCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ContentCache) key(id string) string {
	return fmt.Sprintf("content:%s", id)
}
