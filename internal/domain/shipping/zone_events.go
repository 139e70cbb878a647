package shipping

import (
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Aggregate type constant for Zone
const AggregateTypeZone = "ShippingZone"

// Event type constants for Zone
const (
	EventTypeZoneCreated = "ShippingZoneCreated"
	EventTypeZoneRenamed = "ShippingZoneRenamed"
	EventTypeZoneDeleted = "ShippingZoneDeleted"
)

// ZoneCreatedEvent is published when a new shipping zone is created
type ZoneCreatedEvent struct {
	shared.BaseDomainEvent
	ZoneID uuid.UUID `json:"zone_id"`
	Name   string    `json:"name"`
}

// NewZoneCreatedEvent creates a new ZoneCreatedEvent
func NewZoneCreatedEvent(zone *Zone) *ZoneCreatedEvent {
	return &ZoneCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeZoneCreated, AggregateTypeZone, zone.ID, zone.StoreID),
		ZoneID:          zone.ID,
		Name:            zone.Name,
	}
}

// ZoneRenamedEvent is published when a shipping zone is renamed
type ZoneRenamedEvent struct {
	shared.BaseDomainEvent
	ZoneID uuid.UUID `json:"zone_id"`
	Name   string    `json:"name"`
}

// NewZoneRenamedEvent creates a new ZoneRenamedEvent
func NewZoneRenamedEvent(zone *Zone) *ZoneRenamedEvent {
	return &ZoneRenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeZoneRenamed, AggregateTypeZone, zone.ID, zone.StoreID),
		ZoneID:          zone.ID,
		Name:            zone.Name,
	}
}

// ZoneDeletedEvent is published when a shipping zone and its region
// assignments are removed
type ZoneDeletedEvent struct {
	shared.BaseDomainEvent
	ZoneID uuid.UUID `json:"zone_id"`
	Name   string    `json:"name"`
}

// NewZoneDeletedEvent creates a new ZoneDeletedEvent
func NewZoneDeletedEvent(zone *Zone) *ZoneDeletedEvent {
	return &ZoneDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeZoneDeleted, AggregateTypeZone, zone.ID, zone.StoreID),
		ZoneID:          zone.ID,
		Name:            zone.Name,
	}
}
