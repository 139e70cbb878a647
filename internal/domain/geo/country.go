package geo

import (
	"time"

	"github.com/google/uuid"
)

// Country is a read-only reference row from the geographic directory.
// Countries and states are seeded by migration and never written by
// this service.
type Country struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Code      string    `gorm:"type:varchar(2);not null;uniqueIndex"` // ISO 3166-1 alpha-2
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Country) TableName() string {
	return "countries"
}

// State is a read-only reference row for a country subdivision
// (state, province, territory).
type State struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Code      string    `gorm:"type:varchar(10);not null"`
	CountryID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (State) TableName() string {
	return "states"
}
