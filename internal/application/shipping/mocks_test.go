package shipping

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
)

// MockZoneRepository is a mock implementation of shipping.ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Zone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Zone), args.Error(1)
}

func (m *MockZoneRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.Zone, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Zone), args.Error(1)
}

func (m *MockZoneRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]shipping.Zone, int64, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]shipping.Zone), args.Get(1).(int64), args.Error(2)
}

func (m *MockZoneRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, storeID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockZoneRepository) Save(ctx context.Context, zone *shipping.Zone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssignmentRepository is a mock implementation of
// shipping.RegionAssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.RegionAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RegionAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.RegionAssignment, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RegionAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindBulkCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) (*shipping.RegionAssignment, error) {
	args := m.Called(ctx, storeID, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RegionAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindBulkStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) (*shipping.RegionAssignment, error) {
	args := m.Called(ctx, storeID, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.RegionAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindZipRangeAssignments(ctx context.Context, storeID, stateID uuid.UUID) ([]shipping.RegionAssignment, error) {
	args := m.Called(ctx, storeID, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.RegionAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListZipRangeEntries(ctx context.Context, storeID, stateID uuid.UUID) ([]shipping.ZipRangeEntry, error) {
	args := m.Called(ctx, storeID, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.ZipRangeEntry), args.Error(1)
}

func (m *MockAssignmentRepository) ListCountryAssignments(ctx context.Context, storeID uuid.UUID) ([]shipping.CountryZoneEntry, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.CountryZoneEntry), args.Error(1)
}

func (m *MockAssignmentRepository) ListStateAssignments(ctx context.Context, storeID, countryID uuid.UUID) ([]shipping.StateZoneEntry, error) {
	args := m.Called(ctx, storeID, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipping.StateZoneEntry), args.Error(1)
}

func (m *MockAssignmentRepository) Insert(ctx context.Context, assignment *shipping.RegionAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) InsertZipRange(ctx context.Context, storeID uuid.UUID, assignment *shipping.RegionAssignment) ([]uuid.UUID, error) {
	args := m.Called(ctx, storeID, assignment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssignmentRepository) ReplaceCountryAssignment(ctx context.Context, storeID, zoneID, countryID uuid.UUID) error {
	args := m.Called(ctx, storeID, zoneID, countryID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) error {
	args := m.Called(ctx, storeID, countryID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) DeleteStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) error {
	args := m.Called(ctx, storeID, stateID)
	return args.Error(0)
}

// MockDirectory is a mock implementation of geo.Directory
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetCountries(ctx context.Context) ([]geo.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.Country), args.Error(1)
}

func (m *MockDirectory) GetCountry(ctx context.Context, countryID uuid.UUID) (*geo.Country, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Country), args.Error(1)
}

func (m *MockDirectory) GetStates(ctx context.Context, countryID uuid.UUID) ([]geo.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]geo.State), args.Error(1)
}

func (m *MockDirectory) GetState(ctx context.Context, stateID uuid.UUID) (*geo.State, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.State), args.Error(1)
}

func (m *MockDirectory) GetCountryIDForState(ctx context.Context, stateID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, stateID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockResolutionCache is a mock implementation of shipping.ResolutionCache
type MockResolutionCache struct {
	mock.Mock
}

func (m *MockResolutionCache) Get(ctx context.Context, key shipping.ResolutionKey) (*uuid.UUID, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*uuid.UUID), args.Bool(1)
}

func (m *MockResolutionCache) Set(ctx context.Context, key shipping.ResolutionKey, zoneID *uuid.UUID, ttl time.Duration) {
	m.Called(ctx, key, zoneID, ttl)
}

func (m *MockResolutionCache) InvalidateStore(ctx context.Context, storeID uuid.UUID) {
	m.Called(ctx, storeID)
}
