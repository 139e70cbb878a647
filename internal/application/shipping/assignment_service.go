package shipping

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
)

// DefaultResolutionTTL bounds how long a cached resolution may outlive the
// invalidation that should have dropped it.
const DefaultResolutionTTL = 5 * time.Minute

// AssignmentService handles region assignment writes, listings and zone
// resolution for a store
type AssignmentService struct {
	zoneRepo       shipping.ZoneRepository
	assignmentRepo shipping.RegionAssignmentRepository
	directory      geo.Directory
	resolver       *shipping.ZoneResolver
	cache          shipping.ResolutionCache
	resolutionTTL  time.Duration
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	zoneRepo shipping.ZoneRepository,
	assignmentRepo shipping.RegionAssignmentRepository,
	directory geo.Directory,
	cache shipping.ResolutionCache,
) *AssignmentService {
	return &AssignmentService{
		zoneRepo:       zoneRepo,
		assignmentRepo: assignmentRepo,
		directory:      directory,
		resolver:       shipping.NewZoneResolver(assignmentRepo),
		cache:          cache,
		resolutionTTL:  DefaultResolutionTTL,
	}
}

// SetResolutionTTL overrides how long resolution outcomes stay cached
func (s *AssignmentService) SetResolutionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.resolutionTTL = ttl
	}
}

// AssignCountries binds whole countries to a zone. Each country's existing
// country-wide rule is replaced no matter which of the store's zones held it,
// so a country routes to at most one zone. Countries are processed
// independently; the first failure stops the batch and reports how far it got.
func (s *AssignmentService) AssignCountries(ctx context.Context, storeID, zoneID uuid.UUID, req AssignCountriesRequest) (*AssignCountriesResponse, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}

	// Each replace commits on its own, so a mid-batch failure must still
	// drop cached resolutions for the countries already moved
	wrote := false
	defer func() {
		if wrote {
			s.cache.InvalidateStore(ctx, storeID)
		}
	}()

	assigned := make([]uuid.UUID, 0, len(req.CountryIDs))
	for _, countryID := range req.CountryIDs {
		if _, err := s.directory.GetCountry(ctx, countryID); err != nil {
			return nil, err
		}
		if err := s.assignmentRepo.ReplaceCountryAssignment(ctx, storeID, zone.ID, countryID); err != nil {
			return nil, err
		}
		wrote = true
		assigned = append(assigned, countryID)
	}

	return &AssignCountriesResponse{
		ZoneID:        zone.ID,
		AssignedCount: len(assigned),
		CountryIDs:    assigned,
	}, nil
}

// AssignState binds a whole state to a zone. When the state's country already
// has a country-wide rule, the state defers to it: any existing state row is
// removed, no new row is created and the assignment is reported as deferred.
// Otherwise an existing state rule pointing at a different zone is replaced;
// pointing at the same zone it is left alone.
func (s *AssignmentService) AssignState(ctx context.Context, storeID, zoneID uuid.UUID, req AssignStateRequest) (*AssignStateResponse, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}

	countryID, err := s.directory.GetCountryIDForState(ctx, req.StateID)
	if err != nil {
		return nil, err
	}

	// The delete and insert commit separately, so invalidate as soon as
	// either lands, error path included
	wrote := false
	defer func() {
		if wrote {
			s.cache.InvalidateStore(ctx, storeID)
		}
	}()

	countryRule, err := s.assignmentRepo.FindBulkCountryAssignment(ctx, storeID, countryID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if countryRule != nil {
		// The country-wide rule governs this state; a dedicated state row
		// would be redundant, so any existing one is dropped
		if err := s.assignmentRepo.DeleteStateAssignment(ctx, storeID, req.StateID); err != nil {
			return nil, err
		}
		wrote = true
		return &AssignStateResponse{Deferred: true}, nil
	}

	existing, err := s.assignmentRepo.FindBulkStateAssignment(ctx, storeID, req.StateID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.ZoneID == zone.ID {
			response := ToAssignmentResponse(existing)
			return &AssignStateResponse{Assignment: &response}, nil
		}
		if err := s.assignmentRepo.DeleteStateAssignment(ctx, storeID, req.StateID); err != nil {
			return nil, err
		}
		wrote = true
	}

	assignment, err := shipping.NewStateAssignment(zone.ID, countryID, req.StateID)
	if err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Insert(ctx, assignment); err != nil {
		return nil, err
	}
	wrote = true

	response := ToAssignmentResponse(assignment)
	return &AssignStateResponse{Assignment: &response}, nil
}

// AssignZipRange binds an inclusive zip interval within a state to a zone.
// The interval must not intersect any existing interval for that state in
// the store; intersections come back as conflict IDs and nothing is written.
func (s *AssignmentService) AssignZipRange(ctx context.Context, storeID, zoneID uuid.UUID, req AssignZipRangeRequest) (*AssignZipRangeResponse, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}

	countryID, err := s.directory.GetCountryIDForState(ctx, req.StateID)
	if err != nil {
		return nil, err
	}

	assignment, err := shipping.NewZipRangeAssignment(zone.ID, countryID, req.StateID, req.ZipCodeMin, req.ZipCodeMax)
	if err != nil {
		return nil, err
	}

	conflictIDs, err := s.assignmentRepo.InsertZipRange(ctx, storeID, assignment)
	if err != nil {
		return nil, err
	}
	if len(conflictIDs) > 0 {
		return &AssignZipRangeResponse{ConflictIDs: conflictIDs}, nil
	}

	s.cache.InvalidateStore(ctx, storeID)

	response := ToAssignmentResponse(assignment)
	return &AssignZipRangeResponse{Assignment: &response}, nil
}

// Delete removes a single region assignment
func (s *AssignmentService) Delete(ctx context.Context, storeID, assignmentID uuid.UUID) error {
	assignment, err := s.assignmentRepo.FindByIDForStore(ctx, storeID, assignmentID)
	if err != nil {
		return err
	}

	if err := s.assignmentRepo.DeleteByID(ctx, assignment.ID); err != nil {
		return err
	}

	s.cache.InvalidateStore(ctx, storeID)
	return nil
}

// ListZipRanges returns a state's zip-range assignments with zone names,
// ordered ascending by lower bound
func (s *AssignmentService) ListZipRanges(ctx context.Context, storeID, stateID uuid.UUID) ([]ZipRangeEntryResponse, error) {
	if _, err := s.directory.GetState(ctx, stateID); err != nil {
		return nil, err
	}

	entries, err := s.assignmentRepo.ListZipRangeEntries(ctx, storeID, stateID)
	if err != nil {
		return nil, err
	}

	responses := make([]ZipRangeEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ZipRangeEntryResponse{
			AssignmentID: e.AssignmentID,
			ZoneID:       e.ZoneID,
			ZoneName:     e.ZoneName,
			ZipCodeMin:   e.ZipCodeMin,
			ZipCodeMax:   e.ZipCodeMax,
		}
	}
	return responses, nil
}

// ListCountryAssignments returns the store's country-wide assignments with
// zone names
func (s *AssignmentService) ListCountryAssignments(ctx context.Context, storeID uuid.UUID) ([]CountryAssignmentResponse, error) {
	entries, err := s.assignmentRepo.ListCountryAssignments(ctx, storeID)
	if err != nil {
		return nil, err
	}

	responses := make([]CountryAssignmentResponse, len(entries))
	for i, e := range entries {
		responses[i] = CountryAssignmentResponse{
			AssignmentID: e.AssignmentID,
			CountryID:    e.CountryID,
			ZoneID:       e.ZoneID,
			ZoneName:     e.ZoneName,
		}
	}
	return responses, nil
}

// Matrix returns a country's state-by-state assignment view: every state of
// the country with its effective zone and whether that zone comes from a
// dedicated state rule or the country-wide fallback.
func (s *AssignmentService) Matrix(ctx context.Context, storeID, countryID uuid.UUID) (*MatrixResponse, error) {
	if _, err := s.directory.GetCountry(ctx, countryID); err != nil {
		return nil, err
	}

	states, err := s.directory.GetStates(ctx, countryID)
	if err != nil {
		return nil, err
	}

	stateRules, err := s.assignmentRepo.ListStateAssignments(ctx, storeID, countryID)
	if err != nil {
		return nil, err
	}
	byState := make(map[uuid.UUID]shipping.StateZoneEntry, len(stateRules))
	for _, rule := range stateRules {
		byState[rule.StateID] = rule
	}

	matrix := &MatrixResponse{CountryID: countryID}

	countryRule, err := s.assignmentRepo.FindBulkCountryAssignment(ctx, storeID, countryID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if countryRule != nil {
		zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, countryRule.ZoneID)
		if err != nil {
			return nil, err
		}
		zoneID := zone.ID
		matrix.CountryZoneID = &zoneID
		matrix.CountryZoneName = zone.Name
	}

	matrix.Rows = make([]MatrixRowResponse, len(states))
	for i, state := range states {
		row := MatrixRowResponse{
			StateID:   state.ID,
			StateName: state.Name,
		}
		if rule, ok := byState[state.ID]; ok {
			zoneID := rule.ZoneID
			row.ZoneID = &zoneID
			row.ZoneName = rule.ZoneName
			row.Source = "state"
		} else if matrix.CountryZoneID != nil {
			row.ZoneID = matrix.CountryZoneID
			row.ZoneName = matrix.CountryZoneName
			row.Source = "country"
		}
		matrix.Rows[i] = row
	}

	return matrix, nil
}

// Resolve determines which zone governs an address, consulting the store's
// resolution cache first. "No zone applies" is a cacheable result.
func (s *AssignmentService) Resolve(ctx context.Context, storeID uuid.UUID, req ResolveRequest) (*ResolveResponse, error) {
	key := shipping.NewResolutionKey(storeID, req.CountryID, req.StateID, req.ZipCode)
	if zoneID, ok := s.cache.Get(ctx, key); ok {
		return s.toResolveResponse(ctx, storeID, zoneID)
	}

	zoneID, err := s.resolver.Resolve(ctx, storeID, req.CountryID, req.StateID, req.ZipCode)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, zoneID, s.resolutionTTL)

	return s.toResolveResponse(ctx, storeID, zoneID)
}

func (s *AssignmentService) toResolveResponse(ctx context.Context, storeID uuid.UUID, zoneID *uuid.UUID) (*ResolveResponse, error) {
	if zoneID == nil {
		return &ResolveResponse{Assigned: false}, nil
	}
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, *zoneID)
	if err != nil {
		return nil, err
	}
	return &ResolveResponse{
		Assigned: true,
		ZoneID:   zoneID,
		ZoneName: zone.Name,
	}, nil
}
