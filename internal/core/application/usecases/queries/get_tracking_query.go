// Package queries contains read-only operations over the tracking store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the domain
// model.
package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the current state of an order's tracking:
// status, timestamps, travelled distance, last known position and the
// arrival estimate.
//
// Example:
//
//	query, err := NewGetTrackingQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid tracking query: %w", err)
//	}
//
//	handler := NewGetTrackingQueryHandler(db, cache)
//	snapshot, err := handler.Handle(ctx, query)
type GetTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for an order's tracking state.
func NewGetTrackingQuery(orderID kernel.UUID) (GetTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (q GetTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// PointResponse represents a coordinate pair in query responses.
type PointResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GetTrackingQueryResponse is the full state snapshot of a tracking.
// The struct is JSON-serializable so snapshots can be cached as-is.
type GetTrackingQueryResponse struct {
	TrackingID string `json:"tracking_id"`
	OrderID    string `json:"order_id"`
	CourierID  string `json:"courier_id"`
	Status     string `json:"status"`
	IsActive   bool   `json:"is_active"`

	Pickup          *PointResponse `json:"pickup,omitempty"`
	PickupAddress   string         `json:"pickup_address,omitempty"`
	Delivery        *PointResponse `json:"delivery,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`

	AssignedAt        time.Time  `json:"assigned_at"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	PickupStartedAt   *time.Time `json:"pickup_started_at,omitempty"`
	PickedUpAt        *time.Time `json:"picked_up_at,omitempty"`
	DeliveryStartedAt *time.Time `json:"delivery_started_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`

	TotalDistanceKm      float64        `json:"total_distance_km"`
	EstimatedDistanceKm  float64        `json:"estimated_distance_km"`
	EstimatedArrivalTime *time.Time     `json:"estimated_arrival_time,omitempty"`
	LastKnownPosition    *PointResponse `json:"last_known_position,omitempty"`
	LastLocationUpdate   *time.Time     `json:"last_location_update,omitempty"`

	Notes string `json:"notes,omitempty"`
}
