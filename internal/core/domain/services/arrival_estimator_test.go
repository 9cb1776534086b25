package services_test

import (
	"testing"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrivalEstimator_EstimateMinutes(t *testing.T) {
	estimator := services.NewArrivalEstimator()

	t.Run("should buffer and round up travel time", func(t *testing.T) {
		// 10 km at 40 km/h = 15 min raw, 16.5 min buffered -> 17
		minutes := estimator.EstimateMinutes(10, 0)

		require.NotNil(t, minutes)
		assert.Equal(t, 17, *minutes)
	})

	t.Run("should use supplied speed when positive", func(t *testing.T) {
		// 5 km at 20 km/h = 15 min raw, 16.5 min buffered -> 17
		minutes := estimator.EstimateMinutes(5, 20)

		require.NotNil(t, minutes)
		assert.Equal(t, 17, *minutes)
	})

	t.Run("should fall back to default speed for non-positive speed", func(t *testing.T) {
		withZero := estimator.EstimateMinutes(10, 0)
		withNegative := estimator.EstimateMinutes(10, -5)

		require.NotNil(t, withZero)
		require.NotNil(t, withNegative)
		assert.Equal(t, *withZero, *withNegative)
	})

	t.Run("should report at least one minute for any positive distance", func(t *testing.T) {
		minutes := estimator.EstimateMinutes(0.01, 40)

		require.NotNil(t, minutes)
		assert.Equal(t, 1, *minutes)
	})

	t.Run("should return nil for zero distance", func(t *testing.T) {
		assert.Nil(t, estimator.EstimateMinutes(0, 40))
	})

	t.Run("should return nil for negative distance", func(t *testing.T) {
		assert.Nil(t, estimator.EstimateMinutes(-1, 40))
	})
}

func TestArrivalEstimator_EstimateArrivalTime(t *testing.T) {
	estimator := services.NewArrivalEstimator()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should compute distance and eta between distinct points", func(t *testing.T) {
		current, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)
		destination, err := kernel.NewGeoPoint(24.7743, 46.7386)
		require.NoError(t, err)

		eta, distanceKm, err := estimator.EstimateArrivalTime(current, destination, 0, now)

		require.NoError(t, err)
		assert.Greater(t, distanceKm, 0.0)
		require.NotNil(t, eta)
		assert.True(t, eta.After(now))
	})

	t.Run("should return nil eta when courier is at destination", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)

		eta, distanceKm, err := estimator.EstimateArrivalTime(point, point, 40, now)

		require.NoError(t, err)
		assert.Zero(t, distanceKm)
		assert.Nil(t, eta)
	})
}

func TestArrivalEstimator_EstimateForTracking(t *testing.T) {
	estimator := services.NewArrivalEstimator()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	newTracking := func(t *testing.T, delivery *kernel.GeoPoint) *tracking.Tracking {
		t.Helper()
		tr, err := tracking.NewTracking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, "",
			delivery, "8 King Fahd Rd",
			now.Add(-time.Hour),
		)
		require.NoError(t, err)
		return tr
	}

	t.Run("should refresh estimate from last known position", func(t *testing.T) {
		destination, err := kernel.NewGeoPoint(24.7743, 46.7386)
		require.NoError(t, err)
		tr := newTracking(t, &destination)

		position, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)
		require.NoError(t, tr.ApplyLocation(position, 0, now))

		err = estimator.EstimateForTracking(tr, 0, now)

		require.NoError(t, err)
		assert.Greater(t, tr.EstimatedDistanceKm(), 0.0)
		require.NotNil(t, tr.EstimatedArrivalTime())
		assert.True(t, tr.EstimatedArrivalTime().After(now))
	})

	t.Run("should leave estimate empty without a destination", func(t *testing.T) {
		tr := newTracking(t, nil)

		position, err := kernel.NewGeoPoint(24.7136, 46.6753)
		require.NoError(t, err)
		require.NoError(t, tr.ApplyLocation(position, 0, now))

		err = estimator.EstimateForTracking(tr, 40, now)

		require.NoError(t, err)
		assert.Nil(t, tr.EstimatedArrivalTime())
		assert.Zero(t, tr.EstimatedDistanceKm())
	})

	t.Run("should leave estimate empty without a position report", func(t *testing.T) {
		destination, err := kernel.NewGeoPoint(24.7743, 46.7386)
		require.NoError(t, err)
		tr := newTracking(t, &destination)

		err = estimator.EstimateForTracking(tr, 40, now)

		require.NoError(t, err)
		assert.Nil(t, tr.EstimatedArrivalTime())
	})
}
