package shipping

import (
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// SpecificityLevel identifies how narrowly a region assignment applies.
// Resolution always prefers the most specific matching rule.
type SpecificityLevel string

const (
	LevelCountry  SpecificityLevel = "country"   // whole country, no state or zip bounds
	LevelState    SpecificityLevel = "state"     // whole state, no zip bounds
	LevelZipRange SpecificityLevel = "zip_range" // inclusive zip interval within one state
)

// RegionAssignment binds a geographic scope to a shipping zone.
// Exactly one of three shapes is valid:
//   - country-level: StateID, ZipCodeMin, ZipCodeMax all nil
//   - state-level:   StateID set, zip bounds nil
//   - zip-range:     StateID and both zip bounds set, min <= max
type RegionAssignment struct {
	shared.BaseEntity
	ZoneID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CountryID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	StateID    *uuid.UUID `gorm:"type:uuid;index"`
	ZipCodeMin *int       `gorm:"column:zip_code_min"`
	ZipCodeMax *int       `gorm:"column:zip_code_max"`
}

// TableName returns the table name for GORM
func (RegionAssignment) TableName() string {
	return "region_assignments"
}

// NewCountryAssignment creates a country-level (bulk) assignment
func NewCountryAssignment(zoneID, countryID uuid.UUID) (*RegionAssignment, error) {
	if zoneID == uuid.Nil || countryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Zone and country are required")
	}
	return &RegionAssignment{
		BaseEntity: shared.NewBaseEntity(),
		ZoneID:     zoneID,
		CountryID:  countryID,
	}, nil
}

// NewStateAssignment creates a state-level (bulk) assignment
func NewStateAssignment(zoneID, countryID, stateID uuid.UUID) (*RegionAssignment, error) {
	if zoneID == uuid.Nil || countryID == uuid.Nil || stateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Zone, country and state are required")
	}
	sid := stateID
	return &RegionAssignment{
		BaseEntity: shared.NewBaseEntity(),
		ZoneID:     zoneID,
		CountryID:  countryID,
		StateID:    &sid,
	}, nil
}

// NewZipRangeAssignment creates a zip-range assignment with inclusive bounds.
// A single-zip range (min == max) is valid.
func NewZipRangeAssignment(zoneID, countryID, stateID uuid.UUID, zipMin, zipMax int) (*RegionAssignment, error) {
	if zoneID == uuid.Nil || countryID == uuid.Nil || stateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Zone, country and state are required")
	}
	if zipMin < 0 || zipMax < 0 {
		return nil, shared.NewDomainError("INVALID_ZIP_RANGE", "Zip codes cannot be negative")
	}
	if zipMin > zipMax {
		return nil, shared.NewDomainError("INVALID_ZIP_RANGE", "Zip range lower bound cannot exceed upper bound")
	}
	sid := stateID
	minCopy, maxCopy := zipMin, zipMax
	return &RegionAssignment{
		BaseEntity: shared.NewBaseEntity(),
		ZoneID:     zoneID,
		CountryID:  countryID,
		StateID:    &sid,
		ZipCodeMin: &minCopy,
		ZipCodeMax: &maxCopy,
	}, nil
}

// Level returns the assignment's specificity level
func (a *RegionAssignment) Level() SpecificityLevel {
	switch {
	case a.StateID == nil:
		return LevelCountry
	case a.ZipCodeMin == nil || a.ZipCodeMax == nil:
		return LevelState
	default:
		return LevelZipRange
	}
}

// IsZipRange reports whether this is a zip-range assignment
func (a *RegionAssignment) IsZipRange() bool {
	return a.Level() == LevelZipRange
}

// ContainsZip reports whether a zip-range assignment covers the given zip
// code. Bounds are inclusive. Non-zip-range assignments never contain a zip.
func (a *RegionAssignment) ContainsZip(zip int) bool {
	if !a.IsZipRange() {
		return false
	}
	return zip >= *a.ZipCodeMin && zip <= *a.ZipCodeMax
}

// OverlapsRange reports whether a zip-range assignment's interval intersects
// [zipMin, zipMax]. Touching-but-distinct ranges (e.g. [100,199] and
// [200,299]) do not overlap.
func (a *RegionAssignment) OverlapsRange(zipMin, zipMax int) bool {
	if !a.IsZipRange() {
		return false
	}
	return zipMin <= *a.ZipCodeMax && zipMax >= *a.ZipCodeMin
}

// Validate checks that the populated fields form one of the three legal
// specificity shapes
func (a *RegionAssignment) Validate() error {
	if a.ZoneID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNMENT", "Assignment requires a zone")
	}
	if a.CountryID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNMENT", "Assignment requires a country")
	}
	hasMin := a.ZipCodeMin != nil
	hasMax := a.ZipCodeMax != nil
	if hasMin != hasMax {
		return shared.NewDomainError("INVALID_ASSIGNMENT", "Zip range requires both bounds")
	}
	if hasMin && a.StateID == nil {
		return shared.NewDomainError("INVALID_ASSIGNMENT", "Zip range requires a state")
	}
	if hasMin && *a.ZipCodeMin > *a.ZipCodeMax {
		return shared.NewDomainError("INVALID_ZIP_RANGE", "Zip range lower bound cannot exceed upper bound")
	}
	return nil
}
