package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/geo"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// GormGeoRepository implements geo.Directory using GORM. The country and
// state tables are reference data seeded by migration.
type GormGeoRepository struct {
	db *gorm.DB
}

// NewGormGeoRepository creates a new GormGeoRepository
func NewGormGeoRepository(db *gorm.DB) *GormGeoRepository {
	return &GormGeoRepository{db: db}
}

// GetCountries returns all countries ordered by name
func (r *GormGeoRepository) GetCountries(ctx context.Context) ([]geo.Country, error) {
	var countries []geo.Country
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// GetCountry returns a single country by ID
func (r *GormGeoRepository) GetCountry(ctx context.Context, countryID uuid.UUID) (*geo.Country, error) {
	var country geo.Country
	if err := r.db.WithContext(ctx).First(&country, "id = ?", countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &country, nil
}

// GetStates returns a country's states ordered by name
func (r *GormGeoRepository) GetStates(ctx context.Context, countryID uuid.UUID) ([]geo.State, error) {
	var states []geo.State
	if err := r.db.WithContext(ctx).
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// GetState returns a single state by ID
func (r *GormGeoRepository) GetState(ctx context.Context, stateID uuid.UUID) (*geo.State, error) {
	var state geo.State
	if err := r.db.WithContext(ctx).First(&state, "id = ?", stateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// GetCountryIDForState resolves the owning country of a state
func (r *GormGeoRepository) GetCountryIDForState(ctx context.Context, stateID uuid.UUID) (uuid.UUID, error) {
	state, err := r.GetState(ctx, stateID)
	if err != nil {
		return uuid.Nil, err
	}
	return state.CountryID, nil
}

// Ensure GormGeoRepository implements Directory
var _ geo.Directory = (*GormGeoRepository)(nil)
