package services

import (
	"math"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

const (
	// DefaultSpeedKmh is the assumed courier speed when no recent speed
	// report is available.
	DefaultSpeedKmh = 40.0

	// trafficBuffer inflates the raw travel time to account for traffic,
	// stops and detours.
	trafficBuffer = 1.10
)

// ArrivalEstimator is a domain service that computes the remaining distance
// and expected arrival time of a delivery from the courier's current
// position.
//
// Key responsibilities:
//   - Computing the great-circle distance from the courier to the destination
//   - Converting that distance into an ETA in whole minutes
//
// Business rules:
//   - Travel time assumes DefaultSpeedKmh unless a positive speed is supplied
//   - The raw travel time is inflated by a fixed traffic buffer
//   - Minutes are rounded up, so an estimate is never optimistic
//   - A courier already at (or past) the destination yields no ETA
//
// Example usage:
//
//	estimator := services.NewArrivalEstimator()
//	eta, distanceKm, err := estimator.EstimateArrivalTime(current, destination, speed, time.Now())
//	if err != nil {
//	    // Handle invalid coordinates
//	    return
//	}
//	if eta == nil {
//	    // Courier has effectively arrived
//	}
type ArrivalEstimator struct{}

// NewArrivalEstimator creates a new ArrivalEstimator instance.
func NewArrivalEstimator() ArrivalEstimator {
	return ArrivalEstimator{}
}

// EstimateMinutes computes the estimated travel time in whole minutes for the
// given remaining distance.
//
// Parameters:
//   - distanceKm: The remaining great-circle distance in kilometers
//   - speedKmh: The courier speed in km/h; values <= 0 fall back to DefaultSpeedKmh
//
// Returns:
//   - *int: The buffered travel time in minutes (rounded up), or nil when
//     the distance is zero or negative
func (e ArrivalEstimator) EstimateMinutes(distanceKm float64, speedKmh float64) *int {
	if distanceKm <= 0 {
		return nil
	}
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}

	minutes := int(math.Ceil(distanceKm / speedKmh * 60 * trafficBuffer))
	return &minutes
}

// EstimateArrivalTime computes the remaining distance from current to
// destination and the resulting arrival time relative to now.
//
// Parameters:
//   - current: The courier's current position
//   - destination: The delivery destination
//   - speedKmh: The courier speed in km/h; values <= 0 fall back to DefaultSpeedKmh
//   - now: The reference time for the estimate
//
// Returns:
//   - *time.Time: now plus the estimated minutes, or nil when the courier
//     has effectively arrived
//   - float64: The remaining great-circle distance in kilometers
//   - error: Validation errors from improperly constructed points
func (e ArrivalEstimator) EstimateArrivalTime(
	current kernel.GeoPoint,
	destination kernel.GeoPoint,
	speedKmh float64,
	now time.Time,
) (*time.Time, float64, error) {
	distanceKm, err := current.DistanceTo(destination)
	if err != nil {
		return nil, 0, err
	}

	minutes := e.EstimateMinutes(distanceKm, speedKmh)
	if minutes == nil {
		return nil, distanceKm, nil
	}

	eta := now.Add(time.Duration(*minutes) * time.Minute)
	return &eta, distanceKm, nil
}

// EstimateForTracking refreshes a tracking's arrival estimate from its last
// known position. Trackings without a destination or without any position
// report keep an empty estimate.
//
// Parameters:
//   - t: The tracking to refresh (must be valid and active)
//   - speedKmh: The courier speed in km/h; values <= 0 fall back to DefaultSpeedKmh
//   - now: The reference time for the estimate
//
// Returns:
//   - error: Validation errors or tracking.ErrTrackingClosed
func (e ArrivalEstimator) EstimateForTracking(t *tracking.Tracking, speedKmh float64, now time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}

	current := t.LastKnownPosition()
	destination := t.Delivery()
	if current == nil || destination == nil {
		return nil
	}

	eta, distanceKm, err := e.EstimateArrivalTime(*current, *destination, speedKmh, now)
	if err != nil {
		return err
	}

	return t.SetArrivalEstimate(distanceKm, eta)
}
