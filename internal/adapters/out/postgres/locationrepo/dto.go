// Package locationrepo provides data transfer objects and mapping functions for
// location history persistence. Samples are append-only rows; the composite
// index on (tracking_id, created_at) serves both route reads and the
// most-recent lookup.
package locationrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// LocationSampleDTO represents the database structure for persisting location
// samples. created_at carries its own index for the retention sweep's cutoff
// scan.
type LocationSampleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID uuid.UUID `gorm:"type:uuid;index:idx_location_samples_tracking_created,priority:1"`

	Lat float64
	Lon float64

	AccuracyM  *float64
	SpeedKmh   *float64
	HeadingDeg *float64

	Status                 string
	DistanceFromPreviousKm float64

	CreatedAt time.Time `gorm:"index:idx_location_samples_tracking_created,priority:2,sort:desc;index"`
}

// TableName specifies the database table name for location samples.
func (LocationSampleDTO) TableName() string {
	return "location_samples"
}

// fromDomain converts a location sample entity to its database representation.
func fromDomain(sample *tracking.LocationSample) LocationSampleDTO {
	return LocationSampleDTO{
		ID:         sample.ID().Bytes(),
		TrackingID: sample.TrackingID().Bytes(),

		Lat: sample.Point().Lat(),
		Lon: sample.Point().Lon(),

		AccuracyM:  sample.AccuracyM(),
		SpeedKmh:   sample.SpeedKmh(),
		HeadingDeg: sample.HeadingDeg(),

		Status:                 sample.Status().String(),
		DistanceFromPreviousKm: sample.DistanceFromPreviousKm(),

		CreatedAt: sample.CreatedAt(),
	}
}

// toDomain converts a database DTO to a location sample entity.
func toDomain(dto LocationSampleDTO) (*tracking.LocationSample, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.UUIDFromBytes(dto.TrackingID[:])
	if err != nil {
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	status, err := tracking.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreLocationSample(
		id, trackingID, point,
		dto.AccuracyM, dto.SpeedKmh, dto.HeadingDeg,
		status, dto.DistanceFromPreviousKm, dto.CreatedAt,
	)
}
