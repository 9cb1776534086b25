package commands

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor",
)

// RecordLocationCommand represents a courier position report for an order's
// tracking. Accuracy, speed and heading are optional device metadata;
// statusAtSample annotates the sample with the courier's reported status
// (StatusUnknown means "use the tracking's current status"); a zero
// recordedAt is replaced by the current time.
//
// Example:
//
//	cmd, err := NewRecordLocationCommand(orderID, point, nil, &speedKmh, nil, tracking.StatusUnknown, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid location report: %w", err)
//	}
//
//	handler := NewRecordLocationCommandHandler(uowFactory, estimator)
//	result, err := handler.Handle(ctx, cmd)
type RecordLocationCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	point          kernel.GeoPoint
	accuracyM      *float64
	speedKmh       *float64
	headingDeg     *float64
	statusAtSample tracking.Status
	recordedAt     time.Time

	guard guard.ConstructorGuard
}

// NewRecordLocationCommand creates a command to record a position report.
// Validates the order identifier, the coordinates and the optional metadata
// (accuracy and speed non-negative, heading within [0, 360]).
func NewRecordLocationCommand(
	orderID kernel.UUID,
	point kernel.GeoPoint,
	accuracyM *float64,
	speedKmh *float64,
	headingDeg *float64,
	statusAtSample tracking.Status,
	recordedAt time.Time,
) (RecordLocationCommand, error) {
	cmd := RecordLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPoint(point),
		cmd.setAccuracyM(accuracyM),
		cmd.setSpeedKmh(speedKmh),
		cmd.setHeadingDeg(headingDeg),
		cmd.setStatusAtSample(statusAtSample),
	); err != nil {
		return RecordLocationCommand{}, err
	}

	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	cmd.recordedAt = recordedAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c RecordLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Point returns the reported position.
func (c RecordLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

// AccuracyM returns the reported accuracy in meters, or nil.
func (c RecordLocationCommand) AccuracyM() *float64 {
	return c.accuracyM
}

// SpeedKmh returns the reported instantaneous speed in km/h, or nil.
func (c RecordLocationCommand) SpeedKmh() *float64 {
	return c.speedKmh
}

// HeadingDeg returns the reported compass heading in degrees, or nil.
func (c RecordLocationCommand) HeadingDeg() *float64 {
	return c.headingDeg
}

// StatusAtSample returns the courier-reported status annotation, or
// StatusUnknown when the report did not carry one.
func (c RecordLocationCommand) StatusAtSample() tracking.Status {
	return c.statusAtSample
}

// RecordedAt returns when the report was taken.
func (c RecordLocationCommand) RecordedAt() time.Time {
	return c.recordedAt
}

func (c *RecordLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.point = point
	return nil
}

func (c *RecordLocationCommand) setAccuracyM(accuracyM *float64) error {
	if accuracyM != nil && *accuracyM < 0 {
		return errs.NewValueIsInvalidErrorWithCause("accuracy",
			fmt.Errorf("%f is negative", *accuracyM))
	}

	c.accuracyM = accuracyM
	return nil
}

func (c *RecordLocationCommand) setSpeedKmh(speedKmh *float64) error {
	if speedKmh != nil && *speedKmh < 0 {
		return errs.NewValueIsInvalidErrorWithCause("speed",
			fmt.Errorf("%f is negative", *speedKmh))
	}

	c.speedKmh = speedKmh
	return nil
}

func (c *RecordLocationCommand) setHeadingDeg(headingDeg *float64) error {
	if headingDeg != nil && (*headingDeg < 0 || *headingDeg > 360) {
		return errs.NewValueIsOutOfRangeError("heading", *headingDeg, 0.0, 360.0)
	}

	c.headingDeg = headingDeg
	return nil
}

func (c *RecordLocationCommand) setStatusAtSample(status tracking.Status) error {
	if status != tracking.StatusUnknown {
		if err := status.Validate(); err != nil {
			return err
		}
	}

	c.statusAtSample = status
	return nil
}
