package refdata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refdata:unit:"

// RedisCache stores unit → region mappings with a TTL.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache creates a cache over client. A nil client yields a nil cache.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if client == nil {
		return nil
	}
	return &RedisCache{client: client, ttl: ttl}
}

func unitKey(unitID int64) string {
	return keyPrefix + strconv.FormatInt(unitID, 10)
}

// Get returns the cached region of unitID and whether it was present.
func (c *RedisCache) Get(ctx context.Context, unitID int64) (int64, bool, error) {
	v, err := c.client.Get(ctx, unitKey(unitID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get unit %d: %w", unitID, err)
	}
	return v, true, nil
}

// Set stores the region of unitID.
func (c *RedisCache) Set(ctx context.Context, unitID, regionID int64) error {
	if err := c.client.Set(ctx, unitKey(unitID), regionID, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set unit %d: %w", unitID, err)
	}
	return nil
}
