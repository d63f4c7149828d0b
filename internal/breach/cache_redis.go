package breach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis key per geofence, hash field per user. Keeping one hash per geofence
// makes Evict a single DEL instead of a keyspace scan.
const stateKeyPrefix = "breach:geofence:"

// RedisStateCache is a Redis-backed StateCache for deployments where several
// instances share breach state. Hash operations are per-field atomic, which
// preserves the no-cross-key-interference contract.
type RedisStateCache struct {
	client *redis.Client
}

func NewRedisStateCache(client *redis.Client) *RedisStateCache {
	return &RedisStateCache{client: client}
}

func stateKey(geofenceID string) string {
	return stateKeyPrefix + geofenceID
}

func (c *RedisStateCache) Get(ctx context.Context, userID, geofenceID string) (Status, bool, error) {
	raw, err := c.client.HGet(ctx, stateKey(geofenceID), userID).Result()
	if errors.Is(err, redis.Nil) {
		return Status{}, false, nil
	}
	if err != nil {
		return Status{}, false, fmt.Errorf("get breach status: %w", err)
	}
	var status Status
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return Status{}, false, fmt.Errorf("decode breach status: %w", err)
	}
	return status, true, nil
}

func (c *RedisStateCache) Set(ctx context.Context, userID, geofenceID string, status Status) error {
	raw, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("encode breach status: %w", err)
	}
	if err := c.client.HSet(ctx, stateKey(geofenceID), userID, raw).Err(); err != nil {
		return fmt.Errorf("set breach status: %w", err)
	}
	return nil
}

func (c *RedisStateCache) Evict(ctx context.Context, geofenceID string) error {
	if err := c.client.Del(ctx, stateKey(geofenceID)).Err(); err != nil {
		return fmt.Errorf("evict breach status: %w", err)
	}
	return nil
}
