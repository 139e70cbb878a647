package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
)

// GormRegionAssignmentRepository implements shipping.RegionAssignmentRepository
// using GORM. Store scoping goes through the owning zone: an assignment belongs
// to a store when its zone does.
type GormRegionAssignmentRepository struct {
	db *gorm.DB
}

// NewGormRegionAssignmentRepository creates a new GormRegionAssignmentRepository
func NewGormRegionAssignmentRepository(db *gorm.DB) *GormRegionAssignmentRepository {
	return &GormRegionAssignmentRepository{db: db}
}

// storeZoneIDs builds a subquery selecting the store's zone IDs
func (r *GormRegionAssignmentRepository) storeZoneIDs(tx *gorm.DB, storeID uuid.UUID) *gorm.DB {
	return tx.Model(&shipping.Zone{}).Select("id").Where("store_id = ?", storeID)
}

// FindByID finds an assignment by its ID
func (r *GormRegionAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.RegionAssignment, error) {
	var assignment shipping.RegionAssignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindByIDForStore finds an assignment whose zone belongs to the store
func (r *GormRegionAssignmentRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*shipping.RegionAssignment, error) {
	tx := r.db.WithContext(ctx)
	var assignment shipping.RegionAssignment
	if err := tx.
		Where("id = ? AND zone_id IN (?)", id, r.storeZoneIDs(tx, storeID)).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindBulkCountryAssignment returns the store's country-level assignment for
// the country
func (r *GormRegionAssignmentRepository) FindBulkCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) (*shipping.RegionAssignment, error) {
	tx := r.db.WithContext(ctx)
	var assignment shipping.RegionAssignment
	if err := tx.
		Where("country_id = ? AND state_id IS NULL AND zone_id IN (?)", countryID, r.storeZoneIDs(tx, storeID)).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindBulkStateAssignment returns the store's state-level assignment for the
// state
func (r *GormRegionAssignmentRepository) FindBulkStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) (*shipping.RegionAssignment, error) {
	tx := r.db.WithContext(ctx)
	var assignment shipping.RegionAssignment
	if err := tx.
		Where("state_id = ? AND zip_code_min IS NULL AND zone_id IN (?)", stateID, r.storeZoneIDs(tx, storeID)).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// FindZipRangeAssignments returns the state's zip-range assignments for the
// store, ordered ascending by lower bound
func (r *GormRegionAssignmentRepository) FindZipRangeAssignments(ctx context.Context, storeID, stateID uuid.UUID) ([]shipping.RegionAssignment, error) {
	tx := r.db.WithContext(ctx)
	var assignments []shipping.RegionAssignment
	if err := tx.
		Where("state_id = ? AND zip_code_min IS NOT NULL AND zone_id IN (?)", stateID, r.storeZoneIDs(tx, storeID)).
		Order("zip_code_min ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListZipRangeEntries returns the state's zip-range assignments joined with
// zone names, ordered ascending by lower bound
func (r *GormRegionAssignmentRepository) ListZipRangeEntries(ctx context.Context, storeID, stateID uuid.UUID) ([]shipping.ZipRangeEntry, error) {
	var entries []shipping.ZipRangeEntry
	if err := r.db.WithContext(ctx).
		Model(&shipping.RegionAssignment{}).
		Select("region_assignments.id AS assignment_id, shipping_zones.id AS zone_id, shipping_zones.name AS zone_name, region_assignments.zip_code_min, region_assignments.zip_code_max").
		Joins("JOIN shipping_zones ON shipping_zones.id = region_assignments.zone_id").
		Where("shipping_zones.store_id = ? AND region_assignments.state_id = ? AND region_assignments.zip_code_min IS NOT NULL", storeID, stateID).
		Order("region_assignments.zip_code_min ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListCountryAssignments returns the store's country-level assignments joined
// with zone names
func (r *GormRegionAssignmentRepository) ListCountryAssignments(ctx context.Context, storeID uuid.UUID) ([]shipping.CountryZoneEntry, error) {
	var entries []shipping.CountryZoneEntry
	if err := r.db.WithContext(ctx).
		Model(&shipping.RegionAssignment{}).
		Select("region_assignments.id AS assignment_id, region_assignments.country_id, shipping_zones.id AS zone_id, shipping_zones.name AS zone_name").
		Joins("JOIN shipping_zones ON shipping_zones.id = region_assignments.zone_id").
		Where("shipping_zones.store_id = ? AND region_assignments.state_id IS NULL", storeID).
		Order("shipping_zones.name ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListStateAssignments returns the store's state-level assignments for a
// country joined with zone names
func (r *GormRegionAssignmentRepository) ListStateAssignments(ctx context.Context, storeID, countryID uuid.UUID) ([]shipping.StateZoneEntry, error) {
	var entries []shipping.StateZoneEntry
	if err := r.db.WithContext(ctx).
		Model(&shipping.RegionAssignment{}).
		Select("region_assignments.id AS assignment_id, region_assignments.state_id, shipping_zones.id AS zone_id, shipping_zones.name AS zone_name").
		Joins("JOIN shipping_zones ON shipping_zones.id = region_assignments.zone_id").
		Where("shipping_zones.store_id = ? AND region_assignments.country_id = ? AND region_assignments.state_id IS NOT NULL AND region_assignments.zip_code_min IS NULL", storeID, countryID).
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Insert persists a new assignment after shape validation
func (r *GormRegionAssignmentRepository) Insert(ctx context.Context, assignment *shipping.RegionAssignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

// InsertZipRange atomically checks the state's existing zip ranges for
// interval overlap and inserts the assignment when none intersect. Writers
// are serialized per (store, state) with an advisory lock so two concurrent
// inserts cannot both pass the check; row locks would not cover the case
// where neither writer sees a conflicting row yet.
func (r *GormRegionAssignmentRepository) InsertZipRange(ctx context.Context, storeID uuid.UUID, assignment *shipping.RegionAssignment) ([]uuid.UUID, error) {
	if err := assignment.Validate(); err != nil {
		return nil, err
	}
	if !assignment.IsZipRange() {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Assignment is not a zip range")
	}

	var conflictIDs []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Held until commit; sqlite serializes writers on its own
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?), hashtext(?))",
				storeID.String(), assignment.StateID.String(),
			).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Model(&shipping.RegionAssignment{}).
			Where("state_id = ? AND zip_code_min IS NOT NULL AND zone_id IN (?)",
				*assignment.StateID, r.storeZoneIDs(tx, storeID)).
			Where("zip_code_min <= ? AND zip_code_max >= ?", *assignment.ZipCodeMax, *assignment.ZipCodeMin).
			Pluck("id", &conflictIDs).Error; err != nil {
			return err
		}
		if len(conflictIDs) > 0 {
			return nil
		}

		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return conflictIDs, nil
}

// ReplaceCountryAssignment atomically removes the store's existing
// country-level assignment for the country and inserts a new one bound to
// zoneID
func (r *GormRegionAssignmentRepository) ReplaceCountryAssignment(ctx context.Context, storeID, zoneID, countryID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("country_id = ? AND state_id IS NULL AND zone_id IN (?)", countryID, r.storeZoneIDs(tx, storeID)).
			Delete(&shipping.RegionAssignment{}).Error; err != nil {
			return err
		}

		assignment, err := shipping.NewCountryAssignment(zoneID, countryID)
		if err != nil {
			return err
		}
		return tx.Create(assignment).Error
	})
}

// DeleteByID deletes a single assignment
func (r *GormRegionAssignmentRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shipping.RegionAssignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteCountryAssignment removes the store's country-level row for the
// country if present
func (r *GormRegionAssignmentRepository) DeleteCountryAssignment(ctx context.Context, storeID, countryID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	return tx.
		Where("country_id = ? AND state_id IS NULL AND zone_id IN (?)", countryID, r.storeZoneIDs(tx, storeID)).
		Delete(&shipping.RegionAssignment{}).Error
}

// DeleteStateAssignment removes the store's state-level rows for the state.
// Zip-range rows for the state are untouched.
func (r *GormRegionAssignmentRepository) DeleteStateAssignment(ctx context.Context, storeID, stateID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	return tx.
		Where("state_id = ? AND zip_code_min IS NULL AND zone_id IN (?)", stateID, r.storeZoneIDs(tx, storeID)).
		Delete(&shipping.RegionAssignment{}).Error
}

// Ensure GormRegionAssignmentRepository implements RegionAssignmentRepository
var _ shipping.RegionAssignmentRepository = (*GormRegionAssignmentRepository)(nil)
