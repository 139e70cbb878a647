package shipping

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZone(t *testing.T) {
	storeID := uuid.New()

	t.Run("creates zone with valid input", func(t *testing.T) {
		zone, err := NewZone(storeID, "Domestic")
		require.NoError(t, err)
		require.NotNil(t, zone)

		assert.NotEqual(t, uuid.Nil, zone.ID)
		assert.Equal(t, storeID, zone.StoreID)
		assert.Equal(t, "Domestic", zone.Name)
		assert.Equal(t, 1, zone.GetVersion())

		events := zone.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeZoneCreated, events[0].EventType())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		zone, err := NewZone(storeID, "  West Coast  ")
		require.NoError(t, err)
		assert.Equal(t, "West Coast", zone.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		zone, err := NewZone(storeID, "   ")
		assert.Nil(t, zone)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		zone, err := NewZone(storeID, strings.Repeat("z", 101))
		assert.Nil(t, zone)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 100 characters")
	})
}

func TestZone_Rename(t *testing.T) {
	storeID := uuid.New()

	t.Run("renames and bumps version", func(t *testing.T) {
		zone, err := NewZone(storeID, "Domestic")
		require.NoError(t, err)
		zone.ClearDomainEvents()
		before := zone.UpdatedAt

		err = zone.Rename("International")
		require.NoError(t, err)
		assert.Equal(t, "International", zone.Name)
		assert.Equal(t, 2, zone.GetVersion())
		assert.False(t, zone.UpdatedAt.Before(before))

		events := zone.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeZoneRenamed, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		zone, err := NewZone(storeID, "Domestic")
		require.NoError(t, err)

		err = zone.Rename("")
		assert.Error(t, err)
		assert.Equal(t, "Domestic", zone.Name)
	})
}

func TestZone_MarkDeleted(t *testing.T) {
	zone, err := NewZone(uuid.New(), "Doomed")
	require.NoError(t, err)
	zone.ClearDomainEvents()

	zone.MarkDeleted()

	events := zone.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeZoneDeleted, events[0].EventType())
}
