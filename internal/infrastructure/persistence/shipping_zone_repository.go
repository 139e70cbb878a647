package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
)

// GormZoneRepository implements shipping.ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// FindByID finds a zone by its ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Zone, error) {
	var zone shipping.Zone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindByIDForStore finds a zone by ID within a store
func (r *GormZoneRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.Zone, error) {
	var zone shipping.Zone
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindByStore returns one page of the store's zones ordered by name, along
// with the store's total zone count
func (r *GormZoneRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]shipping.Zone, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&shipping.Zone{}).
		Where("store_id = ?", storeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var zones []shipping.Zone
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("name ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&zones).Error; err != nil {
		return nil, 0, err
	}
	return zones, total, nil
}

// ExistsByName checks if the store already has a zone with the given name
func (r *GormZoneRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shipping.Zone{}).
		Where("store_id = ? AND name = ?", storeID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a zone
func (r *GormZoneRepository) Save(ctx context.Context, zone *shipping.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete removes a zone and every region assignment referencing it. Both
// deletes run in one transaction so a failure cannot leave a zone stripped
// of its assignments.
func (r *GormZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("zone_id = ?", id).
			Delete(&shipping.RegionAssignment{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&shipping.Zone{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormZoneRepository implements ZoneRepository
var _ shipping.ZoneRepository = (*GormZoneRepository)(nil)
