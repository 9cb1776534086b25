package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

const (
	// DefaultRouteLimit is the number of samples returned when a route query
	// does not specify one.
	DefaultRouteLimit = 50

	// MaxRouteLimit caps the number of samples a single route query may return.
	MaxRouteLimit = 500
)

var ErrGetRecentRouteQueryIsNotConstructed = errors.New(
	"GetRecentRouteQuery must be created via NewGetRecentRouteQuery constructor",
)

// GetRecentRouteQuery retrieves the most recent stretch of a courier's route
// for an order, newest sample first.
//
// Example:
//
//	query, err := NewGetRecentRouteQuery(orderID, 100)
//	if err != nil {
//	    return fmt.Errorf("invalid route query: %w", err)
//	}
//
//	handler := NewGetRecentRouteQueryHandler(db)
//	route, err := handler.Handle(ctx, query)
type GetRecentRouteQuery struct {
	orderID kernel.UUID
	limit   int

	guard guard.ConstructorGuard
}

// NewGetRecentRouteQuery creates a route query. limit <= 0 selects
// DefaultRouteLimit; values above MaxRouteLimit are clamped.
func NewGetRecentRouteQuery(orderID kernel.UUID, limit int) (GetRecentRouteQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetRecentRouteQuery{}, err
	}

	if limit <= 0 {
		limit = DefaultRouteLimit
	}
	if limit > MaxRouteLimit {
		limit = MaxRouteLimit
	}

	return GetRecentRouteQuery{
		orderID: orderID,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRecentRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentRouteQueryIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (q GetRecentRouteQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Limit returns the effective sample limit.
func (q GetRecentRouteQuery) Limit() int {
	return q.limit
}

// RouteSampleResponse represents one position report in a route response.
type RouteSampleResponse struct {
	SampleID               string        `json:"sample_id"`
	Point                  PointResponse `json:"point"`
	AccuracyM              *float64      `json:"accuracy_m,omitempty"`
	SpeedKmh               *float64      `json:"speed_kmh,omitempty"`
	HeadingDeg             *float64      `json:"heading_deg,omitempty"`
	Status                 string        `json:"status"`
	DistanceFromPreviousKm float64       `json:"distance_from_previous_km"`
	RecordedAt             time.Time     `json:"recorded_at"`
}
