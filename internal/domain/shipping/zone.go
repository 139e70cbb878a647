package shipping

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Zone represents a named shipping-rate grouping a store defines.
// It is the aggregate root that region assignments hang off of: deleting
// a zone must also delete all of its assignments.
type Zone struct {
	shared.StoreAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Zone) TableName() string {
	return "shipping_zones"
}

// NewZone creates a new shipping zone for a store
func NewZone(storeID uuid.UUID, name string) (*Zone, error) {
	if err := validateZoneName(name); err != nil {
		return nil, err
	}

	zone := &Zone{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               strings.TrimSpace(name),
	}

	zone.AddDomainEvent(NewZoneCreatedEvent(zone))

	return zone, nil
}

// Rename changes the zone's display name
func (z *Zone) Rename(name string) error {
	if err := validateZoneName(name); err != nil {
		return err
	}

	z.Name = strings.TrimSpace(name)
	z.Touch()
	z.IncrementVersion()

	z.AddDomainEvent(NewZoneRenamedEvent(z))

	return nil
}

// MarkDeleted records the deletion event before the zone and its
// assignments are removed from storage
func (z *Zone) MarkDeleted() {
	z.AddDomainEvent(NewZoneDeletedEvent(z))
}

func validateZoneName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Zone name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Zone name cannot exceed 100 characters")
	}
	return nil
}
