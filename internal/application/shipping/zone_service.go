package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shipping"
)

// ZoneService handles shipping zone lifecycle operations
type ZoneService struct {
	zoneRepo shipping.ZoneRepository
	cache    shipping.ResolutionCache
}

// NewZoneService creates a new ZoneService
func NewZoneService(zoneRepo shipping.ZoneRepository, cache shipping.ResolutionCache) *ZoneService {
	return &ZoneService{
		zoneRepo: zoneRepo,
		cache:    cache,
	}
}

// Create creates a new shipping zone for a store
func (s *ZoneService) Create(ctx context.Context, storeID uuid.UUID, req CreateZoneRequest) (*ZoneResponse, error) {
	exists, err := s.zoneRepo.ExistsByName(ctx, storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Zone with this name already exists")
	}

	zone, err := shipping.NewZone(storeID, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// GetByID retrieves a zone by ID
func (s *ZoneService) GetByID(ctx context.Context, storeID, zoneID uuid.UUID) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// List returns one page of the store's zones, ordered by name
func (s *ZoneService) List(ctx context.Context, storeID uuid.UUID, req ListZonesRequest) (*shared.Paginated[ZoneResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	zones, total, err := s.zoneRepo.FindByStore(ctx, storeID, filter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToZoneResponses(zones), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Rename changes a zone's display name
func (s *ZoneService) Rename(ctx context.Context, storeID, zoneID uuid.UUID, req RenameZoneRequest) (*ZoneResponse, error) {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return nil, err
	}

	if req.Name != zone.Name {
		exists, err := s.zoneRepo.ExistsByName(ctx, storeID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Zone with this name already exists")
		}
	}

	if err := zone.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Save(ctx, zone); err != nil {
		return nil, err
	}

	response := ToZoneResponse(zone)
	return &response, nil
}

// Delete removes a zone along with every region assignment that references
// it, then drops the store's cached resolutions.
func (s *ZoneService) Delete(ctx context.Context, storeID, zoneID uuid.UUID) error {
	zone, err := s.zoneRepo.FindByIDForStore(ctx, storeID, zoneID)
	if err != nil {
		return err
	}

	zone.MarkDeleted()

	if err := s.zoneRepo.Delete(ctx, zone.ID); err != nil {
		return err
	}

	s.cache.InvalidateStore(ctx, storeID)
	return nil
}
