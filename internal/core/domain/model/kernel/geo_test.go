package kernel_test

import (
	"testing"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		// When
		p, err := kernel.NewGeoPoint(24.7136, 46.6753)

		// Then
		require.NoError(t, err)
		assert.InDelta(t, 24.7136, p.Lat(), 1e-9)
		assert.InDelta(t, 46.6753, p.Lon(), 1e-9)
	})

	t.Run("boundary_coordinates_are_valid", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"south_pole", -90, 0},
			{"north_pole", 90, 0},
			{"date_line_west", 0, -180},
			{"date_line_east", 0, 180},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.NoError(t, err)
			})
		}
	})

	t.Run("out_of_range_coordinates_are_rejected", func(t *testing.T) {
		testCases := []struct {
			name     string
			lat, lon float64
		}{
			{"latitude_too_low", -90.01, 0},
			{"latitude_too_high", 90.01, 0},
			{"longitude_too_low", 0, -180.01},
			{"longitude_too_high", 0, 180.01},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lon)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p kernel.GeoPoint
		require.Error(t, p.Validate())
	})
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		// Given
		p, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)

		// When
		d, err := p.DistanceTo(p)

		// Then
		require.NoError(t, err)
		assert.Zero(t, d)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		// Given
		a, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(21.4858, 39.1925)
		require.NoError(t, err)

		// When
		ab, err := a.DistanceTo(b)
		require.NoError(t, err)
		ba, err := b.DistanceTo(a)
		require.NoError(t, err)

		// Then
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("known_distance_riyadh_to_jeddah", func(t *testing.T) {
		// Given: Riyadh and Jeddah, great-circle distance ~850 km.
		riyadh, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)
		jeddah, err := kernel.NewGeoPoint(21.4858, 39.1925)
		require.NoError(t, err)

		// When
		d, err := riyadh.DistanceTo(jeddah)

		// Then
		require.NoError(t, err)
		assert.InDelta(t, 849.0, d, 5.0)
	})

	t.Run("result_is_rounded_to_two_decimals", func(t *testing.T) {
		// Given
		a, err := kernel.NewGeoPoint(24.71, 46.72)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(24.705, 46.715)
		require.NoError(t, err)

		// When
		d, err := a.DistanceTo(b)

		// Then
		require.NoError(t, err)
		assert.InDelta(t, d, float64(int(d*100))/100, 1e-9)
	})

	t.Run("unconstructed_point_is_rejected", func(t *testing.T) {
		// Given
		a, err := kernel.NewGeoPoint(24.71, 46.72)
		require.NoError(t, err)
		var b kernel.GeoPoint

		// When
		_, err = a.DistanceTo(b)

		// Then
		require.Error(t, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(24.71, 46.72)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(24.71, 46.72)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(24.71, 46.72)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(24.72, 46.71)
		require.NoError(t, err)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})
}
