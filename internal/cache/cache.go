// Package cache provides an optional Redis-backed metadata cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"audiobridge/internal/logging"
	"audiobridge/internal/media"
)

const defaultTTL = 30 * time.Minute

// Metadata caches extraction results per backend for a short TTL. Stream URLs
// expire upstream, so entries are deliberately short-lived. A nil *Metadata is
// a no-op, which is how the service runs when Redis is not configured.
type Metadata struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr or a failed ping disables the
// cache; the service keeps running without it.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration, logger *slog.Logger) *Metadata {
	if addr == "" {
		return nil
	}
	log := logging.WithComponent(logger, "cache")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, metadata cache disabled", logging.Error(err))
		_ = client.Close()
		return nil
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}
	log.Info("metadata cache enabled", slog.String("addr", addr), slog.Duration("ttl", ttl))
	return &Metadata{client: client, ttl: ttl}
}

func key(backend, videoID string) string {
	return fmt.Sprintf("meta:%s:%s", backend, videoID)
}

// Get returns the cached Info for backend/videoID, or nil on miss or error.
func (m *Metadata) Get(ctx context.Context, backend, videoID string) *media.Info {
	if m == nil {
		return nil
	}
	raw, err := m.client.Get(ctx, key(backend, videoID)).Bytes()
	if err != nil {
		return nil
	}
	var info media.Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil
	}
	return &info
}

// Put stores info under backend/videoID for the configured TTL. Failures are
// silently dropped; the cache is an optimization, never a dependency.
func (m *Metadata) Put(ctx context.Context, backend, videoID string, info *media.Info) {
	if m == nil || info == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	_ = m.client.Set(ctx, key(backend, videoID), raw, m.ttl).Err()
}

// Close releases the Redis connection.
func (m *Metadata) Close() error {
	if m == nil {
		return nil
	}
	return m.client.Close()
}
