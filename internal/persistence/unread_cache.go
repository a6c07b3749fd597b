package persistence

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadKeyPrefix = "chat:unread:"

// UnreadCache caches per-user unread message counts in Redis. Every method is
// nil-safe and degrades to a cache miss when Redis is unavailable, so the chat
// service can always fall back to the store.
type UnreadCache struct {
	redis *Redis
	ttl   time.Duration
}

// NewUnreadCache builds a cache over the shared Redis client.
func NewUnreadCache(r *Redis) *UnreadCache {
	return &UnreadCache{redis: r, ttl: 30 * time.Second}
}

// Get returns the cached count and whether the key was present.
func (c *UnreadCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return 0, false
	}
	val, err := c.redis.Client.Get(ctx, unreadKeyPrefix+userID).Result()
	if err == redis.Nil || err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the count with a short TTL.
func (c *UnreadCache) Set(ctx context.Context, userID string, count int64) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Set(ctx, unreadKeyPrefix+userID, count, c.ttl).Err()
}

// Invalidate drops the cached count, forcing the next read to hit the store.
func (c *UnreadCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	_ = c.redis.Client.Del(ctx, unreadKeyPrefix+userID).Err()
}
