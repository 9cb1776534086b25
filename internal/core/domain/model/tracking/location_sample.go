package tracking

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

const (
	// minHeadingDeg and maxHeadingDeg bound the optional compass heading.
	minHeadingDeg = 0.0
	maxHeadingDeg = 360.0
)

// ErrLocationSampleIsNotConstructed is returned when a LocationSample was not
// created through NewLocationSample or RestoreLocationSample.
var ErrLocationSampleIsNotConstructed = errors.New(
	"LocationSample must be created via NewLocationSample or RestoreLocationSample constructor")

// LocationSample is one immutable courier position report. Samples are
// created only when a location update is recorded, never modified, and
// deleted only by the retention sweep (which spares each tracking's newest
// sample) or together with their tracking.
//
// distanceFromPreviousKm is the great-circle distance to the sample that
// preceded this one at write time; the first sample of a tracking carries 0.
// The sum of the deltas over all surviving samples, ordered by createdAt,
// equals the tracking's totalDistanceKm until retention prunes interior rows.
type LocationSample struct {
	// id is the unique identifier of the sample
	id kernel.UUID

	// trackingID references the owning tracking
	trackingID kernel.UUID

	// point is the reported position
	point kernel.GeoPoint

	// optional device metadata
	accuracyM  *float64
	speedKmh   *float64
	headingDeg *float64

	// status is the tracking status at the time of the report
	status Status

	// distanceFromPreviousKm is the delta computed at write time (>= 0)
	distanceFromPreviousKm float64

	// createdAt is the ordering key within a tracking
	createdAt time.Time

	// isConstructed ensures the sample was created via a constructor
	isConstructed bool
}

// NewLocationSample creates a position report. Optional metadata pointers may
// be nil; when present, accuracy and speed must be non-negative and heading
// must lie in [0, 360]. The distance delta must be non-negative and createdAt
// must be set.
func NewLocationSample(
	id kernel.UUID,
	trackingID kernel.UUID,
	point kernel.GeoPoint,
	accuracyM *float64,
	speedKmh *float64,
	headingDeg *float64,
	status Status,
	distanceFromPreviousKm float64,
	createdAt time.Time,
) (*LocationSample, error) {
	s := &LocationSample{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingID(trackingID),
		s.setPoint(point),
		s.setAccuracyM(accuracyM),
		s.setSpeedKmh(speedKmh),
		s.setHeadingDeg(headingDeg),
		s.setStatus(status),
		s.setDistanceFromPreviousKm(distanceFromPreviousKm),
		s.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreLocationSample reconstructs a sample from persistence. The same
// validation applies as at write time: stored samples are immutable so a
// failure here indicates corrupted data.
func RestoreLocationSample(
	id kernel.UUID,
	trackingID kernel.UUID,
	point kernel.GeoPoint,
	accuracyM *float64,
	speedKmh *float64,
	headingDeg *float64,
	status Status,
	distanceFromPreviousKm float64,
	createdAt time.Time,
) (*LocationSample, error) {
	return NewLocationSample(id, trackingID, point, accuracyM, speedKmh, headingDeg,
		status, distanceFromPreviousKm, createdAt)
}

// Validate ensures the instance was created through a constructor.
func (s *LocationSample) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrLocationSampleIsNotConstructed
	}
	return nil
}

// ID returns the sample's unique identifier.
func (s *LocationSample) ID() kernel.UUID {
	return s.id
}

// TrackingID returns the owning tracking's identifier.
func (s *LocationSample) TrackingID() kernel.UUID {
	return s.trackingID
}

// Point returns the reported position.
func (s *LocationSample) Point() kernel.GeoPoint {
	return s.point
}

// AccuracyM returns the reported accuracy in meters, or nil.
func (s *LocationSample) AccuracyM() *float64 {
	return s.accuracyM
}

// SpeedKmh returns the reported instantaneous speed in km/h, or nil.
func (s *LocationSample) SpeedKmh() *float64 {
	return s.speedKmh
}

// HeadingDeg returns the reported compass heading in degrees, or nil.
func (s *LocationSample) HeadingDeg() *float64 {
	return s.headingDeg
}

// Status returns the tracking status at the time of the report.
func (s *LocationSample) Status() Status {
	return s.status
}

// DistanceFromPreviousKm returns the write-time distance delta.
func (s *LocationSample) DistanceFromPreviousKm() float64 {
	return s.distanceFromPreviousKm
}

// CreatedAt returns the ordering timestamp.
func (s *LocationSample) CreatedAt() time.Time {
	return s.createdAt
}

func (s *LocationSample) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *LocationSample) setTrackingID(trackingID kernel.UUID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	s.trackingID = trackingID
	return nil
}

func (s *LocationSample) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	s.point = point
	return nil
}

func (s *LocationSample) setAccuracyM(accuracyM *float64) error {
	if accuracyM != nil && *accuracyM < 0 {
		return errs.NewValueIsInvalidErrorWithCause("accuracy",
			fmt.Errorf("%f is negative", *accuracyM))
	}
	s.accuracyM = accuracyM
	return nil
}

func (s *LocationSample) setSpeedKmh(speedKmh *float64) error {
	if speedKmh != nil && *speedKmh < 0 {
		return errs.NewValueIsInvalidErrorWithCause("speed",
			fmt.Errorf("%f is negative", *speedKmh))
	}
	s.speedKmh = speedKmh
	return nil
}

func (s *LocationSample) setHeadingDeg(headingDeg *float64) error {
	if headingDeg != nil && (*headingDeg < minHeadingDeg || *headingDeg > maxHeadingDeg) {
		return errs.NewValueIsOutOfRangeError("heading", *headingDeg, minHeadingDeg, maxHeadingDeg)
	}
	s.headingDeg = headingDeg
	return nil
}

func (s *LocationSample) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *LocationSample) setDistanceFromPreviousKm(deltaKm float64) error {
	if deltaKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance delta",
			fmt.Errorf("%f is negative", deltaKm))
	}
	s.distanceFromPreviousKm = deltaKm
	return nil
}

func (s *LocationSample) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	s.createdAt = createdAt
	return nil
}
