package commands

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// RecordLocationResult reports the outcome of a recorded position.
type RecordLocationResult struct {
	// SampleID identifies the stored location sample.
	SampleID kernel.UUID

	// DistanceDeltaKm is the great-circle distance from the previous sample,
	// 0 for the first report of a tracking.
	DistanceDeltaKm float64
}

// RecordLocationCommandHandler handles courier position reports.
//
// For each report it computes the distance delta against the tracking's most
// recent sample, appends an immutable sample to the location history, updates
// the aggregate's position and travelled distance, and refreshes the arrival
// estimate when a destination is known. Sample and aggregate are persisted in
// one transaction: either both are stored or neither is.
//
// Example:
//
//	handler := NewRecordLocationCommandHandler(uowFactory, services.NewArrivalEstimator())
//	cmd, _ := NewRecordLocationCommand(orderID, point, nil, nil, nil, tracking.StatusUnknown, time.Now())
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, tracking.ErrTrackingClosed) {
//	    // Delivery already finished; report rejected
//	}
type RecordLocationCommandHandler struct {
	uowFactory UoWFactory
	estimator  services.ArrivalEstimator
}

// NewRecordLocationCommandHandler creates a handler for position reports.
// Requires a UoWFactory spanning both repositories and an ArrivalEstimator.
func NewRecordLocationCommandHandler(
	uowFactory UoWFactory,
	estimator services.ArrivalEstimator,
) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
	}
}

// Handle processes the position report.
// Fails with errs.ErrObjectNotFound when the order has no tracking and with
// tracking.ErrTrackingClosed when the tracking already reached a terminal
// status.
func (h *RecordLocationCommandHandler) Handle(ctx context.Context, cmd RecordLocationCommand) (RecordLocationResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordLocationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RecordLocationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackingRepo := uow.TrackingRepository()
	historyRepo := uow.LocationHistoryRepository()

	aggregate, err := trackingRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return RecordLocationResult{}, err
	}
	if !aggregate.IsActive() {
		return RecordLocationResult{}, tracking.ErrTrackingClosed
	}

	deltaKm, err := h.distanceFromPrevious(ctx, historyRepo, aggregate.ID(), cmd.Point())
	if err != nil {
		return RecordLocationResult{}, err
	}

	if err = aggregate.ApplyLocation(cmd.Point(), deltaKm, cmd.RecordedAt()); err != nil {
		return RecordLocationResult{}, err
	}

	if err = h.refreshEstimate(aggregate, cmd); err != nil {
		return RecordLocationResult{}, err
	}

	sampleStatus := cmd.StatusAtSample()
	if sampleStatus == tracking.StatusUnknown {
		sampleStatus = aggregate.Status()
	}

	sample, err := tracking.NewLocationSample(
		kernel.NewUUID(),
		aggregate.ID(),
		cmd.Point(),
		cmd.AccuracyM(),
		cmd.SpeedKmh(),
		cmd.HeadingDeg(),
		sampleStatus,
		deltaKm,
		cmd.RecordedAt(),
	)
	if err != nil {
		return RecordLocationResult{}, err
	}

	if err = historyRepo.Add(ctx, sample); err != nil {
		return RecordLocationResult{}, err
	}

	if err = trackingRepo.Update(ctx, aggregate); err != nil {
		return RecordLocationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RecordLocationResult{}, err
	}

	return RecordLocationResult{
		SampleID:        sample.ID(),
		DistanceDeltaKm: deltaKm,
	}, nil
}

// distanceFromPrevious computes the great-circle distance from the tracking's
// newest sample to the reported point. The first report of a tracking has no
// predecessor and carries a zero delta.
func (h *RecordLocationCommandHandler) distanceFromPrevious(
	ctx context.Context,
	historyRepo ports.LocationHistoryRepository,
	trackingID kernel.UUID,
	point kernel.GeoPoint,
) (float64, error) {
	previous, err := historyRepo.GetMostRecent(ctx, trackingID)
	if err != nil {
		return 0, err
	}
	if previous == nil {
		return 0, nil
	}

	return previous.Point().DistanceTo(point)
}

// refreshEstimate recomputes the arrival estimate from the new position when
// the tracking carries a destination.
func (h *RecordLocationCommandHandler) refreshEstimate(aggregate *tracking.Tracking, cmd RecordLocationCommand) error {
	if aggregate.Delivery() == nil {
		return nil
	}

	speedKmh := 0.0
	if cmd.SpeedKmh() != nil {
		speedKmh = *cmd.SpeedKmh()
	}

	return h.estimator.EstimateForTracking(aggregate, speedKmh, cmd.RecordedAt())
}
