package queries

import (
	"context"
	"database/sql"
	"errors"

	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecentRouteQueryHandler retrieves location samples of a tracking from
// the database, newest first. Trackings without samples yield an empty route.
//
// Example:
//
//	handler := NewGetRecentRouteQueryHandler(db)
//	query, _ := NewGetRecentRouteQuery(orderID, 0) // default limit
//
//	route, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get route: %v", err)
//	    return err
//	}
type GetRecentRouteQueryHandler struct {
	db *gorm.DB
}

// NewGetRecentRouteQueryHandler creates a handler for route queries.
// Requires a GORM database connection for query execution.
func NewGetRecentRouteQueryHandler(db *gorm.DB) GetRecentRouteQueryHandler {
	return GetRecentRouteQueryHandler{db: db}
}

// Handle executes the query and returns up to Limit() samples, newest first.
// Returns errs.ErrObjectNotFound when the order has no tracking at all.
func (h GetRecentRouteQueryHandler) Handle(
	ctx context.Context,
	query GetRecentRouteQuery,
) ([]RouteSampleResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	trackingID, err := h.trackingID(ctx, query)
	if err != nil {
		return nil, err
	}

	samples := make([]RouteSampleResponse, 0, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			lat,
			lon,
			accuracy_m,
			speed_kmh,
			heading_deg,
			status,
			distance_from_previous_km,
			created_at
		FROM location_samples
		WHERE tracking_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, trackingID, query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sample                          RouteSampleResponse
			id                              uuid.UUID
			accuracyM, speedKmh, headingDeg sql.NullFloat64
		)

		err = rows.Scan(
			&id,
			&sample.Point.Lat,
			&sample.Point.Lon,
			&accuracyM,
			&speedKmh,
			&headingDeg,
			&sample.Status,
			&sample.DistanceFromPreviousKm,
			&sample.RecordedAt,
		)
		if err != nil {
			return nil, err
		}

		sample.SampleID = id.String()
		sample.AccuracyM = nullFloat(accuracyM)
		sample.SpeedKmh = nullFloat(speedKmh)
		sample.HeadingDeg = nullFloat(headingDeg)
		samples = append(samples, sample)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

// trackingID resolves the order's tracking identifier, distinguishing a
// missing tracking from a tracking with an empty route.
func (h GetRecentRouteQueryHandler) trackingID(ctx context.Context, query GetRecentRouteQuery) (uuid.UUID, error) {
	var id uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT id FROM trackings WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, errs.NewObjectNotFoundError("orderID", query.OrderID())
		}
		return uuid.Nil, err
	}

	return id, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	value := v.Float64
	return &value
}
