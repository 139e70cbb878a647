package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCountryAssignment(t *testing.T) {
	t.Run("creates country-level assignment", func(t *testing.T) {
		a, err := NewCountryAssignment(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, LevelCountry, a.Level())
		assert.Nil(t, a.StateID)
		assert.Nil(t, a.ZipCodeMin)
		assert.Nil(t, a.ZipCodeMax)
		assert.NoError(t, a.Validate())
	})

	t.Run("requires zone and country", func(t *testing.T) {
		a, err := NewCountryAssignment(uuid.Nil, uuid.New())
		assert.Nil(t, a)
		assert.Error(t, err)
	})
}

func TestNewStateAssignment(t *testing.T) {
	t.Run("creates state-level assignment", func(t *testing.T) {
		stateID := uuid.New()
		a, err := NewStateAssignment(uuid.New(), uuid.New(), stateID)
		require.NoError(t, err)
		assert.Equal(t, LevelState, a.Level())
		require.NotNil(t, a.StateID)
		assert.Equal(t, stateID, *a.StateID)
		assert.NoError(t, a.Validate())
	})

	t.Run("requires state", func(t *testing.T) {
		a, err := NewStateAssignment(uuid.New(), uuid.New(), uuid.Nil)
		assert.Nil(t, a)
		assert.Error(t, err)
	})
}

func TestNewZipRangeAssignment(t *testing.T) {
	zoneID := uuid.New()
	countryID := uuid.New()
	stateID := uuid.New()

	t.Run("creates zip-range assignment", func(t *testing.T) {
		a, err := NewZipRangeAssignment(zoneID, countryID, stateID, 90000, 90199)
		require.NoError(t, err)
		assert.Equal(t, LevelZipRange, a.Level())
		assert.True(t, a.IsZipRange())
		assert.NoError(t, a.Validate())
	})

	t.Run("allows single-zip range", func(t *testing.T) {
		a, err := NewZipRangeAssignment(zoneID, countryID, stateID, 90210, 90210)
		require.NoError(t, err)
		assert.True(t, a.ContainsZip(90210))
	})

	t.Run("rejects inverted bounds", func(t *testing.T) {
		a, err := NewZipRangeAssignment(zoneID, countryID, stateID, 90200, 90100)
		assert.Nil(t, a)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lower bound cannot exceed upper bound")
	})

	t.Run("rejects negative zips", func(t *testing.T) {
		a, err := NewZipRangeAssignment(zoneID, countryID, stateID, -1, 100)
		assert.Nil(t, a)
		assert.Error(t, err)
	})
}

func TestRegionAssignment_ContainsZip(t *testing.T) {
	a, err := NewZipRangeAssignment(uuid.New(), uuid.New(), uuid.New(), 90000, 90199)
	require.NoError(t, err)

	t.Run("bounds are inclusive", func(t *testing.T) {
		assert.True(t, a.ContainsZip(90000))
		assert.True(t, a.ContainsZip(90100))
		assert.True(t, a.ContainsZip(90199))
	})

	t.Run("outside the interval", func(t *testing.T) {
		assert.False(t, a.ContainsZip(89999))
		assert.False(t, a.ContainsZip(90200))
	})

	t.Run("bulk assignments never contain zips", func(t *testing.T) {
		bulk, err := NewCountryAssignment(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.False(t, bulk.ContainsZip(90000))
	})
}

func TestRegionAssignment_OverlapsRange(t *testing.T) {
	a, err := NewZipRangeAssignment(uuid.New(), uuid.New(), uuid.New(), 90000, 90199)
	require.NoError(t, err)

	t.Run("fully containing", func(t *testing.T) {
		assert.True(t, a.OverlapsRange(89000, 91000))
	})

	t.Run("fully contained", func(t *testing.T) {
		assert.True(t, a.OverlapsRange(90050, 90150))
	})

	t.Run("left overlap", func(t *testing.T) {
		assert.True(t, a.OverlapsRange(89900, 90050))
	})

	t.Run("right overlap", func(t *testing.T) {
		assert.True(t, a.OverlapsRange(90100, 90300))
	})

	t.Run("shared boundary zip conflicts", func(t *testing.T) {
		assert.True(t, a.OverlapsRange(90199, 90399))
	})

	t.Run("adjacent ranges do not overlap", func(t *testing.T) {
		assert.False(t, a.OverlapsRange(90200, 90399))
		assert.False(t, a.OverlapsRange(89000, 89999))
	})
}

func TestRegionAssignment_Validate(t *testing.T) {
	t.Run("rejects zip bounds without state", func(t *testing.T) {
		zipMin, zipMax := 100, 200
		a := &RegionAssignment{
			ZoneID:     uuid.New(),
			CountryID:  uuid.New(),
			ZipCodeMin: &zipMin,
			ZipCodeMax: &zipMax,
		}
		assert.Error(t, a.Validate())
	})

	t.Run("rejects one-sided zip bounds", func(t *testing.T) {
		stateID := uuid.New()
		zipMin := 100
		a := &RegionAssignment{
			ZoneID:     uuid.New(),
			CountryID:  uuid.New(),
			StateID:    &stateID,
			ZipCodeMin: &zipMin,
		}
		assert.Error(t, a.Validate())
	})

	t.Run("rejects missing zone", func(t *testing.T) {
		a := &RegionAssignment{CountryID: uuid.New()}
		assert.Error(t, a.Validate())
	})
}
