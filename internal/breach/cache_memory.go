package breach

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
)

// cacheShards keeps lock contention per-key-range instead of global. Breach
// state is touched on every location update, so a single lock would become
// the subsystem's bottleneck under many simultaneous users.
const cacheShards = 32

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]Status
}

// InMemoryStateCache is a sharded in-process StateCache. It backs tests and
// single-node deployments; RedisStateCache is the shared production
// implementation.
type InMemoryStateCache struct {
	shards [cacheShards]*cacheShard
}

func NewInMemoryStateCache() *InMemoryStateCache {
	c := &InMemoryStateCache{}
	for i := range c.shards {
		c.shards[i] = &cacheShard{entries: make(map[string]Status)}
	}
	return c
}

func cacheKey(userID, geofenceID string) string {
	return userID + "|" + geofenceID
}

func (c *InMemoryStateCache) shardFor(key string) *cacheShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()%cacheShards]
}

func (c *InMemoryStateCache) Get(_ context.Context, userID, geofenceID string) (Status, bool, error) {
	key := cacheKey(userID, geofenceID)
	shard := c.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	status, ok := shard.entries[key]
	return status, ok, nil
}

func (c *InMemoryStateCache) Set(_ context.Context, userID, geofenceID string, status Status) error {
	key := cacheKey(userID, geofenceID)
	shard := c.shardFor(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.entries[key] = status
	return nil
}

// Evict removes every entry for the geofence regardless of user. It scans all
// shards; eviction only happens on geofence deletion, which is rare next to
// the evaluation traffic.
func (c *InMemoryStateCache) Evict(_ context.Context, geofenceID string) error {
	suffix := "|" + geofenceID
	for _, shard := range c.shards {
		shard.mu.Lock()
		for key := range shard.entries {
			if strings.HasSuffix(key, suffix) {
				delete(shard.entries, key)
			}
		}
		shard.mu.Unlock()
	}
	return nil
}
