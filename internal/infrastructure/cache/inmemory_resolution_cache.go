package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shipping"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryResolutionCache implements shipping.ResolutionCache with in-process
// storage. Suitable for single-instance deployments and testing; entries are
// bucketed per store so invalidation stays cheap.
type InMemoryResolutionCache struct {
	mu      sync.RWMutex
	stores  map[uuid.UUID]map[shipping.ResolutionKey]*resolutionEntry
	stopCh  chan struct{}
	stopped int32
}

// resolutionEntry wraps a cached outcome with its expiration time. A nil
// zoneID is the cached "no zone applies" outcome, not a miss.
type resolutionEntry struct {
	zoneID    *uuid.UUID
	expiresAt time.Time
}

func (e *resolutionEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryResolutionCache creates a new in-memory resolution cache
func NewInMemoryResolutionCache() *InMemoryResolutionCache {
	c := &InMemoryResolutionCache{
		stores: make(map[uuid.UUID]map[shipping.ResolutionKey]*resolutionEntry),
		stopCh: make(chan struct{}),
	}

	go c.cleanupExpired()

	return c
}

// Get retrieves a cached resolution outcome
func (c *InMemoryResolutionCache) Get(ctx context.Context, key shipping.ResolutionKey) (*uuid.UUID, bool) {
	c.mu.RLock()
	entry, ok := c.stores[key.StoreID][key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if entry.isExpired() {
		c.mu.Lock()
		delete(c.stores[key.StoreID], key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.zoneID, true
}

// Set stores a resolution outcome with a TTL
func (c *InMemoryResolutionCache) Set(ctx context.Context, key shipping.ResolutionKey, zoneID *uuid.UUID, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	entry := &resolutionEntry{
		zoneID:    zoneID,
		expiresAt: time.Now().Add(ttl),
	}

	c.mu.Lock()
	bucket, ok := c.stores[key.StoreID]
	if !ok {
		bucket = make(map[shipping.ResolutionKey]*resolutionEntry)
		c.stores[key.StoreID] = bucket
	}
	bucket[key] = entry
	c.mu.Unlock()
}

// InvalidateStore drops every cached resolution for a store
func (c *InMemoryResolutionCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) {
	c.mu.Lock()
	delete(c.stores, storeID)
	c.mu.Unlock()
}

// Count returns the total number of cached entries
func (c *InMemoryResolutionCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, bucket := range c.stores {
		total += len(bucket)
	}
	return total
}

// Close stops the background cleanup goroutine
func (c *InMemoryResolutionCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

func (c *InMemoryResolutionCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryResolutionCache) doCleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for storeID, bucket := range c.stores {
		for key, entry := range bucket {
			if entry.isExpired() {
				delete(bucket, key)
			}
		}
		if len(bucket) == 0 {
			delete(c.stores, storeID)
		}
	}
}

// Ensure InMemoryResolutionCache implements ResolutionCache
var _ shipping.ResolutionCache = (*InMemoryResolutionCache)(nil)
