package geo

import (
	"context"

	"github.com/google/uuid"
)

// Directory is the read-only catalog of countries and their states.
// Lookups for unknown identifiers return shared.ErrNotFound.
type Directory interface {
	// GetCountries returns all countries ordered by name
	GetCountries(ctx context.Context) ([]Country, error)

	// GetCountry returns a single country by ID
	GetCountry(ctx context.Context, countryID uuid.UUID) (*Country, error)

	// GetStates returns a country's states ordered by name
	GetStates(ctx context.Context, countryID uuid.UUID) ([]State, error)

	// GetState returns a single state by ID
	GetState(ctx context.Context, stateID uuid.UUID) (*State, error)

	// GetCountryIDForState resolves the owning country of a state
	GetCountryIDForState(ctx context.Context, stateID uuid.UUID) (uuid.UUID, error)
}
