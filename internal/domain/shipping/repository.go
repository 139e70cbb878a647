package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// ZoneRepository defines the interface for shipping zone persistence
type ZoneRepository interface {
	// FindByID finds a zone by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)

	// FindByIDForStore finds a zone by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Zone, error)

	// FindByStore returns one page of the store's zones ordered by name,
	// along with the store's total zone count
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Zone, int64, error)

	// ExistsByName checks if the store already has a zone with the given name
	ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error)

	// Save creates or updates a zone
	Save(ctx context.Context, zone *Zone) error

	// Delete removes a zone and every region assignment referencing it in
	// one transaction
	Delete(ctx context.Context, id uuid.UUID) error
}

// ZipRangeEntry is a zip-range assignment joined with its zone's name,
// used for the per-state listing screens.
type ZipRangeEntry struct {
	AssignmentID uuid.UUID
	ZoneID       uuid.UUID
	ZoneName     string
	ZipCodeMin   int
	ZipCodeMax   int
}

// CountryZoneEntry is a country-level assignment joined with its zone's name
type CountryZoneEntry struct {
	AssignmentID uuid.UUID
	CountryID    uuid.UUID
	ZoneID       uuid.UUID
	ZoneName     string
}

// StateZoneEntry is a state-level assignment joined with its zone's name
type StateZoneEntry struct {
	AssignmentID uuid.UUID
	StateID      uuid.UUID
	ZoneID       uuid.UUID
	ZoneName     string
}

// RegionAssignmentRepository defines the interface for region assignment
// persistence. All store-scoped queries range over the zones owned by that
// store, which is what keeps zone references inside one store's zone set.
type RegionAssignmentRepository interface {
	// FindByID finds an assignment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RegionAssignment, error)

	// FindByIDForStore finds an assignment whose zone belongs to the store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*RegionAssignment, error)

	// FindBulkCountryAssignment returns the single country-level assignment
	// for the country among the store's zones, or shared.ErrNotFound
	FindBulkCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) (*RegionAssignment, error)

	// FindBulkStateAssignment returns the single state-level assignment for
	// the state among the store's zones, or shared.ErrNotFound
	FindBulkStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) (*RegionAssignment, error)

	// FindZipRangeAssignments returns the state's zip-range assignments for
	// the store, ordered ascending by ZipCodeMin
	FindZipRangeAssignments(ctx context.Context, storeID, stateID uuid.UUID) ([]RegionAssignment, error)

	// ListZipRangeEntries returns the state's zip-range assignments joined
	// with zone names, ordered ascending by ZipCodeMin
	ListZipRangeEntries(ctx context.Context, storeID, stateID uuid.UUID) ([]ZipRangeEntry, error)

	// ListCountryAssignments returns the store's country-level assignments
	// joined with zone names
	ListCountryAssignments(ctx context.Context, storeID uuid.UUID) ([]CountryZoneEntry, error)

	// ListStateAssignments returns the store's state-level assignments for a
	// country joined with zone names
	ListStateAssignments(ctx context.Context, storeID, countryID uuid.UUID) ([]StateZoneEntry, error)

	// Insert persists a new assignment after shape validation
	Insert(ctx context.Context, assignment *RegionAssignment) error

	// InsertZipRange atomically checks the state's existing zip ranges for
	// interval overlap and inserts the assignment when none intersect.
	// A non-empty result is the set of conflicting assignment IDs; the
	// assignment was not inserted. Conflicts are a normal outcome, not an
	// error.
	InsertZipRange(ctx context.Context, storeID uuid.UUID, assignment *RegionAssignment) ([]uuid.UUID, error)

	// ReplaceCountryAssignment atomically removes the store's existing
	// country-level assignment for the country (whichever zone held it) and
	// inserts a new one bound to zoneID
	ReplaceCountryAssignment(ctx context.Context, storeID, zoneID, countryID uuid.UUID) error

	// DeleteByID deletes a single assignment
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteCountryAssignment removes the store's country-level row for the
	// country if present
	DeleteCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) error

	// DeleteStateAssignment removes the store's state-level rows for the
	// state (zip-range rows are untouched)
	DeleteStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) error
}
