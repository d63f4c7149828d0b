//go:build integration

package breach_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safecircle/internal/breach"
	"safecircle/internal/geo"
	"safecircle/pkg/testutil/containers"
)

func TestRedisStateCache_RoundTrip(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	cache := breach.NewRedisStateCache(rc.Client)

	_, ok, err := cache.Get(ctx, "user1", "fence1")
	require.NoError(t, err)
	assert.False(t, ok)

	status := breach.Status{
		IsInside:        true,
		LastLocation:    geo.Coordinate{Lat: 40.0, Lng: -74.0},
		LastEvaluatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.Set(ctx, "user1", "fence1", status))

	got, ok, err := cache.Get(ctx, "user1", "fence1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, status, got)
}

func TestRedisStateCache_KeysAreIndependent(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	cache := breach.NewRedisStateCache(rc.Client)

	require.NoError(t, cache.Set(ctx, "user1", "fence1", breach.Status{IsInside: true}))
	require.NoError(t, cache.Set(ctx, "user2", "fence1", breach.Status{IsInside: false}))
	require.NoError(t, cache.Set(ctx, "user1", "fence2", breach.Status{IsInside: false}))

	got, ok, err := cache.Get(ctx, "user1", "fence1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.IsInside)

	got, ok, err = cache.Get(ctx, "user2", "fence1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.IsInside)
}

func TestRedisStateCache_EvictDropsEveryUserForFence(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	cache := breach.NewRedisStateCache(rc.Client)

	require.NoError(t, cache.Set(ctx, "user1", "fence1", breach.Status{IsInside: true}))
	require.NoError(t, cache.Set(ctx, "user2", "fence1", breach.Status{IsInside: true}))
	require.NoError(t, cache.Set(ctx, "user1", "fence2", breach.Status{IsInside: true}))

	require.NoError(t, cache.Evict(ctx, "fence1"))

	_, ok, err := cache.Get(ctx, "user1", "fence1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, "user2", "fence1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = cache.Get(ctx, "user1", "fence2")
	require.NoError(t, err)
	assert.True(t, ok)
}
