// Package cache holds the Redis-backed availability cache. The cache
// is an optimization only: every method degrades to a no-op when Redis
// is unreachable, and the reservation store stays the single source of
// truth for slot ownership.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/keshav33450/Slot4Law/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and pings it with a short timeout.
// Returns nil on failure so callers can run without caching.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, availability caching disabled",
			zap.Error(err),
			zap.String("addr", config.Addr),
		)
		return nil
	}

	log.Info("Connected to Redis", zap.String("addr", config.Addr))
	return client
}

// AvailabilityCache caches the free-slot list per lawyer and date. The
// TTL is short and entries are invalidated on every reserve/release, so
// a stale read can at worst produce a spurious conflict, never a double
// booking.
type AvailabilityCache interface {
	Get(ctx context.Context, lawyerEmail, date string) ([]string, bool)
	Set(ctx context.Context, lawyerEmail, date string, slots []string)
	Invalidate(ctx context.Context, lawyerEmail, date string)
}

type availabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewAvailabilityCache wraps the Redis client. A nil client is valid
// and yields a cache that always misses.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) AvailabilityCache {
	return &availabilityCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "availability_cache")),
	}
}

func availabilityKey(lawyerEmail, date string) string {
	return fmt.Sprintf("availability:%s:%s", lawyerEmail, date)
}

func (c *availabilityCache) Get(ctx context.Context, lawyerEmail, date string) ([]string, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(lawyerEmail, date)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Availability cache read failed", zap.Error(err))
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		c.log.Warn("Availability cache entry corrupt", zap.Error(err))
		return nil, false
	}

	return slots, true
}

func (c *availabilityCache) Set(ctx context.Context, lawyerEmail, date string, slots []string) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, availabilityKey(lawyerEmail, date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Availability cache write failed", zap.Error(err))
	}
}

func (c *availabilityCache) Invalidate(ctx context.Context, lawyerEmail, date string) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, availabilityKey(lawyerEmail, date)).Err(); err != nil {
		c.log.Warn("Availability cache invalidation failed", zap.Error(err))
	}
}
