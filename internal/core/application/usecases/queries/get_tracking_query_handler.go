package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"tracking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// snapshotTTL bounds how stale a cached tracking snapshot may be. Couriers
// report every few seconds, so a short TTL keeps reads cheap without serving
// outdated positions for long.
const snapshotTTL = 3 * time.Second

// SnapshotCache is a read-through cache for serialized tracking snapshots.
// Implementations must treat a miss as (nil, false, nil), not as an error.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// GetTrackingQueryHandler retrieves a tracking snapshot by order.
// Reads go through the cache first; on a miss the snapshot is loaded from the
// database and written back with a short TTL. Cache failures are ignored and
// the database is used directly.
//
// Example:
//
//	handler := NewGetTrackingQueryHandler(db, cache)
//	query, _ := NewGetTrackingQuery(orderID)
//
//	snapshot, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // Order has no tracking
//	}
type GetTrackingQueryHandler struct {
	db    *gorm.DB
	cache SnapshotCache
}

// NewGetTrackingQueryHandler creates a handler for tracking snapshot queries.
// Requires a GORM database connection; cache may be nil to disable caching.
func NewGetTrackingQueryHandler(db *gorm.DB, cache SnapshotCache) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db, cache: cache}
}

// Handle executes the query and returns the tracking's state snapshot.
// Returns errs.ErrObjectNotFound when the order has no tracking.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	cacheKey := "tracking:order:" + query.OrderID().String()

	if cached, ok := h.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	snapshot, err := h.load(ctx, query)
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	h.toCache(ctx, cacheKey, snapshot)

	return snapshot, nil
}

func (h GetTrackingQueryHandler) fromCache(ctx context.Context, key string) (GetTrackingQueryResponse, bool) {
	if h.cache == nil {
		return GetTrackingQueryResponse{}, false
	}

	payload, hit, err := h.cache.Get(ctx, key)
	if err != nil || !hit {
		return GetTrackingQueryResponse{}, false
	}

	var snapshot GetTrackingQueryResponse
	if err = json.Unmarshal(payload, &snapshot); err != nil {
		return GetTrackingQueryResponse{}, false
	}

	return snapshot, true
}

func (h GetTrackingQueryHandler) toCache(ctx context.Context, key string, snapshot GetTrackingQueryResponse) {
	if h.cache == nil {
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return
	}

	_ = h.cache.Set(ctx, key, payload, snapshotTTL)
}

func (h GetTrackingQueryHandler) load(ctx context.Context, query GetTrackingQuery) (GetTrackingQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			courier_id,
			status,
			is_active,
			pickup_lat,
			pickup_lon,
			pickup_address,
			delivery_lat,
			delivery_lon,
			delivery_address,
			assigned_at,
			accepted_at,
			pickup_started_at,
			picked_up_at,
			delivery_started_at,
			delivered_at,
			total_distance_km,
			estimated_distance_km,
			estimated_arrival_time,
			last_known_lat,
			last_known_lon,
			last_location_update,
			notes
		FROM trackings
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		snapshot                                 GetTrackingQueryResponse
		id, orderID, courierID                   uuid.UUID
		pickupLat, pickupLon                     sql.NullFloat64
		deliveryLat, deliveryLon                 sql.NullFloat64
		lastKnownLat, lastKnownLon               sql.NullFloat64
		pickupAddress, deliveryAddress, notes    sql.NullString
		acceptedAt, pickupStartedAt, pickedUpAt  sql.NullTime
		deliveryStartedAt, deliveredAt           sql.NullTime
		estimatedArrivalTime, lastLocationUpdate sql.NullTime
	)

	err := row.Scan(
		&id, &orderID, &courierID, &snapshot.Status, &snapshot.IsActive,
		&pickupLat, &pickupLon, &pickupAddress,
		&deliveryLat, &deliveryLon, &deliveryAddress,
		&snapshot.AssignedAt, &acceptedAt, &pickupStartedAt, &pickedUpAt,
		&deliveryStartedAt, &deliveredAt,
		&snapshot.TotalDistanceKm, &snapshot.EstimatedDistanceKm, &estimatedArrivalTime,
		&lastKnownLat, &lastKnownLon, &lastLocationUpdate,
		&notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}

	snapshot.TrackingID = id.String()
	snapshot.OrderID = orderID.String()
	snapshot.CourierID = courierID.String()
	snapshot.Pickup = nullPoint(pickupLat, pickupLon)
	snapshot.PickupAddress = pickupAddress.String
	snapshot.Delivery = nullPoint(deliveryLat, deliveryLon)
	snapshot.DeliveryAddress = deliveryAddress.String
	snapshot.AcceptedAt = nullTime(acceptedAt)
	snapshot.PickupStartedAt = nullTime(pickupStartedAt)
	snapshot.PickedUpAt = nullTime(pickedUpAt)
	snapshot.DeliveryStartedAt = nullTime(deliveryStartedAt)
	snapshot.DeliveredAt = nullTime(deliveredAt)
	snapshot.EstimatedArrivalTime = nullTime(estimatedArrivalTime)
	snapshot.LastKnownPosition = nullPoint(lastKnownLat, lastKnownLon)
	snapshot.LastLocationUpdate = nullTime(lastLocationUpdate)
	snapshot.Notes = notes.String

	return snapshot, nil
}

func nullPoint(lat, lon sql.NullFloat64) *PointResponse {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &PointResponse{Lat: lat.Float64, Lon: lon.Float64}
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
