package shipping

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// ZoneResolver determines which zone, if any, governs an address.
// Precedence is most-specific-wins: zip-range, then state, then country.
// A nil result with a nil error means no rule covers the address, which is
// a valid outcome the caller's fallback policy handles.
type ZoneResolver struct {
	assignments RegionAssignmentRepository
}

// NewZoneResolver creates a new ZoneResolver
func NewZoneResolver(assignments RegionAssignmentRepository) *ZoneResolver {
	return &ZoneResolver{assignments: assignments}
}

// Resolve returns the ID of the zone that applies to the given address.
// stateID and zipCode narrow the lookup when present; zipCode is only
// meaningful together with stateID.
func (r *ZoneResolver) Resolve(ctx context.Context, storeID, countryID uuid.UUID, stateID *uuid.UUID, zipCode *int) (*uuid.UUID, error) {
	if storeID == uuid.Nil || countryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Store and country are required to resolve a zone")
	}

	if stateID != nil {
		if zipCode != nil {
			ranges, err := r.assignments.FindZipRangeAssignments(ctx, storeID, *stateID)
			if err != nil {
				return nil, err
			}
			for i := range ranges {
				if ranges[i].ContainsZip(*zipCode) {
					zoneID := ranges[i].ZoneID
					return &zoneID, nil
				}
			}
		}

		stateRule, err := r.assignments.FindBulkStateAssignment(ctx, storeID, *stateID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if stateRule != nil {
			zoneID := stateRule.ZoneID
			return &zoneID, nil
		}
	}

	countryRule, err := r.assignments.FindBulkCountryAssignment(ctx, storeID, countryID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if countryRule != nil {
		zoneID := countryRule.ZoneID
		return &zoneID, nil
	}

	// Unassigned: no rule covers this address
	return nil, nil
}
