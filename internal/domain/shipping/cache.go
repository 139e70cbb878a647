package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResolutionKey identifies one resolution query. StateID and ZipCode are
// uuid.Nil / -1 when absent so the key stays comparable.
type ResolutionKey struct {
	StoreID   uuid.UUID
	CountryID uuid.UUID
	StateID   uuid.UUID
	ZipCode   int
}

// NewResolutionKey builds a cache key from a resolution query
func NewResolutionKey(storeID, countryID uuid.UUID, stateID *uuid.UUID, zipCode *int) ResolutionKey {
	key := ResolutionKey{
		StoreID:   storeID,
		CountryID: countryID,
		ZipCode:   -1,
	}
	if stateID != nil {
		key.StateID = *stateID
	}
	if zipCode != nil {
		key.ZipCode = *zipCode
	}
	return key
}

// ResolutionCache caches resolved zones per address. "No zone applies" is a
// cacheable result distinct from a miss, so implementations must preserve
// nil zone IDs. Any assignment write for a store invalidates that store's
// entries.
type ResolutionCache interface {
	// Get returns the cached zone ID (possibly nil for "unassigned") and
	// whether the key was present
	Get(ctx context.Context, key ResolutionKey) (*uuid.UUID, bool)

	// Set stores a resolution result with a TTL
	Set(ctx context.Context, key ResolutionKey, zoneID *uuid.UUID, ttl time.Duration)

	// InvalidateStore drops every cached resolution for a store
	InvalidateStore(ctx context.Context, storeID uuid.UUID)
}
