// Package trackingrepo provides data transfer objects and mapping functions for
// tracking persistence. This package implements the repository pattern for the
// tracking domain aggregate, handling the conversion between domain entities
// and database representations.
package trackingrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingDTO represents the database structure for persisting tracking
// aggregates. The unique index on order_id enforces the one-tracking-per-order
// invariant at the storage level; the version column supports optimistic
// concurrency control on updates.
type TrackingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	CourierID uuid.UUID `gorm:"type:uuid;index"`

	PickupLat     *float64
	PickupLon     *float64
	PickupAddress string

	DeliveryLat     *float64
	DeliveryLon     *float64
	DeliveryAddress string

	Status   string `gorm:"index"`
	IsActive bool   `gorm:"index"`

	AssignedAt        time.Time
	AcceptedAt        *time.Time
	PickupStartedAt   *time.Time
	PickedUpAt        *time.Time
	DeliveryStartedAt *time.Time
	DeliveredAt       *time.Time

	TotalDistanceKm      float64
	EstimatedDistanceKm  float64
	EstimatedArrivalTime *time.Time
	LastKnownLat         *float64
	LastKnownLon         *float64
	LastLocationUpdate   *time.Time

	Notes   string
	Version int64
}

// TableName specifies the database table name for tracking entities.
// Overrides GORM's default naming convention to use "trackings".
func (TrackingDTO) TableName() string {
	return "trackings"
}

// fromDomain converts a tracking domain aggregate to its database representation.
func fromDomain(aggregate *tracking.Tracking) TrackingDTO {
	pickupLat, pickupLon := splitPoint(aggregate.Pickup())
	deliveryLat, deliveryLon := splitPoint(aggregate.Delivery())
	lastKnownLat, lastKnownLon := splitPoint(aggregate.LastKnownPosition())

	return TrackingDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		CourierID: aggregate.CourierID().Bytes(),

		PickupLat:     pickupLat,
		PickupLon:     pickupLon,
		PickupAddress: aggregate.PickupAddress(),

		DeliveryLat:     deliveryLat,
		DeliveryLon:     deliveryLon,
		DeliveryAddress: aggregate.DeliveryAddress(),

		Status:   aggregate.Status().String(),
		IsActive: aggregate.IsActive(),

		AssignedAt:        aggregate.AssignedAt(),
		AcceptedAt:        aggregate.AcceptedAt(),
		PickupStartedAt:   aggregate.PickupStartedAt(),
		PickedUpAt:        aggregate.PickedUpAt(),
		DeliveryStartedAt: aggregate.DeliveryStartedAt(),
		DeliveredAt:       aggregate.DeliveredAt(),

		TotalDistanceKm:      aggregate.TotalDistanceKm(),
		EstimatedDistanceKm:  aggregate.EstimatedDistanceKm(),
		EstimatedArrivalTime: aggregate.EstimatedArrivalTime(),
		LastKnownLat:         lastKnownLat,
		LastKnownLon:         lastKnownLon,
		LastLocationUpdate:   aggregate.LastLocationUpdate(),

		Notes:   aggregate.Notes(),
		Version: aggregate.Version(),
	}
}

// toDomain converts a database DTO to a tracking domain aggregate.
// Reconstructs the complete aggregate using RestoreTracking, which re-validates
// the stored state.
func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := tracking.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := joinPoint(dto.PickupLat, dto.PickupLon)
	if err != nil {
		return nil, err
	}

	delivery, err := joinPoint(dto.DeliveryLat, dto.DeliveryLon)
	if err != nil {
		return nil, err
	}

	lastKnown, err := joinPoint(dto.LastKnownLat, dto.LastKnownLon)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreTracking(tracking.RestoreTrackingParams{
		ID:                   id,
		OrderID:              orderID,
		CourierID:            courierID,
		Pickup:               pickup,
		PickupAddress:        dto.PickupAddress,
		Delivery:             delivery,
		DeliveryAddress:      dto.DeliveryAddress,
		Status:               status,
		AssignedAt:           dto.AssignedAt,
		AcceptedAt:           dto.AcceptedAt,
		PickupStartedAt:      dto.PickupStartedAt,
		PickedUpAt:           dto.PickedUpAt,
		DeliveryStartedAt:    dto.DeliveryStartedAt,
		DeliveredAt:          dto.DeliveredAt,
		TotalDistanceKm:      dto.TotalDistanceKm,
		EstimatedDistanceKm:  dto.EstimatedDistanceKm,
		EstimatedArrivalTime: dto.EstimatedArrivalTime,
		LastKnownPosition:    lastKnown,
		LastLocationUpdate:   dto.LastLocationUpdate,
		IsActive:             dto.IsActive,
		Notes:                dto.Notes,
		Version:              dto.Version,
	})
}

func splitPoint(point *kernel.GeoPoint) (*float64, *float64) {
	if point == nil {
		return nil, nil
	}

	lat := point.Lat()
	lon := point.Lon()
	return &lat, &lon
}

func joinPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}

	return &point, nil
}
