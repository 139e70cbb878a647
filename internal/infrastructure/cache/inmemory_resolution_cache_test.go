package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/domain/shipping"
)

func TestInMemoryResolutionCache_GetSet(t *testing.T) {
	cache := NewInMemoryResolutionCache()
	defer cache.Close()
	ctx := context.Background()

	storeID := uuid.New()
	countryID := uuid.New()
	key := shipping.NewResolutionKey(storeID, countryID, nil, nil)

	t.Run("miss before set", func(t *testing.T) {
		_, ok := cache.Get(ctx, key)
		assert.False(t, ok)
	})

	t.Run("returns a cached zone", func(t *testing.T) {
		zoneID := uuid.New()
		cache.Set(ctx, key, &zoneID, time.Minute)

		got, ok := cache.Get(ctx, key)
		require.True(t, ok)
		require.NotNil(t, got)
		assert.Equal(t, zoneID, *got)
	})

	t.Run("caches the unassigned outcome distinctly from a miss", func(t *testing.T) {
		unassignedKey := shipping.NewResolutionKey(storeID, uuid.New(), nil, nil)
		cache.Set(ctx, unassignedKey, nil, time.Minute)

		got, ok := cache.Get(ctx, unassignedKey)
		assert.True(t, ok)
		assert.Nil(t, got)
	})

	t.Run("expired entries behave as misses", func(t *testing.T) {
		expiredKey := shipping.NewResolutionKey(storeID, uuid.New(), nil, nil)
		zoneID := uuid.New()
		cache.Set(ctx, expiredKey, &zoneID, time.Nanosecond)

		time.Sleep(time.Millisecond)

		_, ok := cache.Get(ctx, expiredKey)
		assert.False(t, ok)
	})
}

func TestInMemoryResolutionCache_KeyIdentity(t *testing.T) {
	cache := NewInMemoryResolutionCache()
	defer cache.Close()
	ctx := context.Background()

	storeID := uuid.New()
	countryID := uuid.New()
	stateID := uuid.New()
	zip := 90210

	zoneID := uuid.New()
	full := shipping.NewResolutionKey(storeID, countryID, &stateID, &zip)
	cache.Set(ctx, full, &zoneID, time.Minute)

	// Same address minus the zip is a different key
	_, ok := cache.Get(ctx, shipping.NewResolutionKey(storeID, countryID, &stateID, nil))
	assert.False(t, ok)

	// Same address in another store is a different key
	_, ok = cache.Get(ctx, shipping.NewResolutionKey(uuid.New(), countryID, &stateID, &zip))
	assert.False(t, ok)
}

func TestInMemoryResolutionCache_InvalidateStore(t *testing.T) {
	cache := NewInMemoryResolutionCache()
	defer cache.Close()
	ctx := context.Background()

	storeA := uuid.New()
	storeB := uuid.New()
	zoneID := uuid.New()

	keyA := shipping.NewResolutionKey(storeA, uuid.New(), nil, nil)
	keyB := shipping.NewResolutionKey(storeB, uuid.New(), nil, nil)
	cache.Set(ctx, keyA, &zoneID, time.Minute)
	cache.Set(ctx, keyB, &zoneID, time.Minute)

	cache.InvalidateStore(ctx, storeA)

	_, ok := cache.Get(ctx, keyA)
	assert.False(t, ok)

	_, ok = cache.Get(ctx, keyB)
	assert.True(t, ok)
	assert.Equal(t, 1, cache.Count())
}
