package shipping

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shipping"
)

// =============================================================================
// Zone DTOs
// =============================================================================

// CreateZoneRequest represents a request to create a shipping zone
type CreateZoneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameZoneRequest represents a request to rename a shipping zone
type RenameZoneRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// ListZonesRequest carries pagination for the zone listing. Zero values
// fall back to the defaults.
type ListZonesRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ZoneResponse represents a shipping zone in API responses
type ZoneResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToZoneResponse converts a domain zone to a response DTO
func ToZoneResponse(zone *shipping.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        zone.ID,
		StoreID:   zone.StoreID,
		Name:      zone.Name,
		CreatedAt: zone.CreatedAt,
		UpdatedAt: zone.UpdatedAt,
		Version:   zone.GetVersion(),
	}
}

// ToZoneResponses converts a slice of domain zones to response DTOs
func ToZoneResponses(zones []shipping.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i := range zones {
		responses[i] = ToZoneResponse(&zones[i])
	}
	return responses
}

// =============================================================================
// Assignment DTOs
// =============================================================================

// AssignCountriesRequest represents a request to assign whole countries to a
// zone. Each country's previous bulk rule, wherever it lived, is replaced.
type AssignCountriesRequest struct {
	CountryIDs []uuid.UUID `json:"country_ids" binding:"required,min=1"`
}

// AssignStateRequest represents a request to assign a whole state to a zone
type AssignStateRequest struct {
	StateID uuid.UUID `json:"state_id" binding:"required"`
}

// AssignZipRangeRequest represents a request to assign a zip-code interval
// within a state to a zone. Bounds are inclusive; min == max is a single zip.
type AssignZipRangeRequest struct {
	StateID    uuid.UUID `json:"state_id" binding:"required"`
	ZipCodeMin int       `json:"zip_code_min" binding:"min=0"`
	ZipCodeMax int       `json:"zip_code_max" binding:"min=0"`
}

// AssignmentResponse represents a region assignment in API responses
type AssignmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	ZoneID     uuid.UUID  `json:"zone_id"`
	CountryID  uuid.UUID  `json:"country_id"`
	StateID    *uuid.UUID `json:"state_id,omitempty"`
	ZipCodeMin *int       `json:"zip_code_min,omitempty"`
	ZipCodeMax *int       `json:"zip_code_max,omitempty"`
	Level      string     `json:"level"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToAssignmentResponse converts a domain assignment to a response DTO
func ToAssignmentResponse(a *shipping.RegionAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.ID,
		ZoneID:     a.ZoneID,
		CountryID:  a.CountryID,
		StateID:    a.StateID,
		ZipCodeMin: a.ZipCodeMin,
		ZipCodeMax: a.ZipCodeMax,
		Level:      string(a.Level()),
		CreatedAt:  a.CreatedAt,
	}
}

// AssignCountriesResponse reports the outcome of a bulk country assignment
type AssignCountriesResponse struct {
	ZoneID        uuid.UUID   `json:"zone_id"`
	AssignedCount int         `json:"assigned_count"`
	CountryIDs    []uuid.UUID `json:"country_ids"`
}

// AssignStateResponse reports the outcome of a state assignment. When a
// country-wide rule already covers the state's country no row is created
// and Deferred is true.
type AssignStateResponse struct {
	Assignment *AssignmentResponse `json:"assignment,omitempty"`
	Deferred   bool                `json:"deferred"`
}

// AssignZipRangeResponse reports the outcome of a zip-range assignment.
// ConflictIDs lists the assignments whose intervals intersect the requested
// one; when non-empty, nothing was inserted.
type AssignZipRangeResponse struct {
	Assignment  *AssignmentResponse `json:"assignment,omitempty"`
	ConflictIDs []uuid.UUID         `json:"conflict_ids,omitempty"`
}

// HasConflicts reports whether the zip-range assignment was rejected
func (r *AssignZipRangeResponse) HasConflicts() bool {
	return len(r.ConflictIDs) > 0
}

// ZipRangeEntryResponse is one row of the per-state zip-range listing
type ZipRangeEntryResponse struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	ZoneID       uuid.UUID `json:"zone_id"`
	ZoneName     string    `json:"zone_name"`
	ZipCodeMin   int       `json:"zip_code_min"`
	ZipCodeMax   int       `json:"zip_code_max"`
}

// CountryAssignmentResponse is one row of the store-wide country listing
type CountryAssignmentResponse struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	CountryID    uuid.UUID `json:"country_id"`
	ZoneID       uuid.UUID `json:"zone_id"`
	ZoneName     string    `json:"zone_name"`
}

// MatrixRowResponse is one state row of a country's assignment matrix.
// Source tells where the effective zone comes from: "state" for a dedicated
// rule, "country" for the country-wide fallback, "" when unassigned.
type MatrixRowResponse struct {
	StateID   uuid.UUID  `json:"state_id"`
	StateName string     `json:"state_name"`
	ZoneID    *uuid.UUID `json:"zone_id,omitempty"`
	ZoneName  string     `json:"zone_name,omitempty"`
	Source    string     `json:"source"`
}

// MatrixResponse is a country's full state-by-state assignment view
type MatrixResponse struct {
	CountryID       uuid.UUID           `json:"country_id"`
	CountryZoneID   *uuid.UUID          `json:"country_zone_id,omitempty"`
	CountryZoneName string              `json:"country_zone_name,omitempty"`
	Rows            []MatrixRowResponse `json:"rows"`
}

// =============================================================================
// Resolution DTOs
// =============================================================================

// ResolveRequest represents a zone resolution query for an address
type ResolveRequest struct {
	CountryID uuid.UUID  `form:"country_id" binding:"required"`
	StateID   *uuid.UUID `form:"state_id"`
	ZipCode   *int       `form:"zip_code" binding:"omitempty,min=0"`
}

// ResolveResponse is the outcome of a zone resolution. Assigned is false
// when no rule covers the address; ZoneID and ZoneName are empty then.
type ResolveResponse struct {
	Assigned bool       `json:"assigned"`
	ZoneID   *uuid.UUID `json:"zone_id,omitempty"`
	ZoneName string     `json:"zone_name,omitempty"`
}
