package commands

import (
	"context"
)

// UpdateTrackingStatusCommandHandler handles lifecycle transitions of a
// tracking. The aggregate enforces the state machine: forward moves (with
// skips) along the chain, cancellation from any non-terminal status, and no
// changes once a terminal status is reached.
//
// Example:
//
//	handler := NewUpdateTrackingStatusCommandHandler(uowFactory)
//	cmd, _ := NewUpdateTrackingStatusCommand(orderID, tracking.StatusPickedUp, "", time.Now())
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    if errors.Is(err, tracking.ErrInvalidTransition) {
//	        // Rejected by the state machine
//	    }
//	}
type UpdateTrackingStatusCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewUpdateTrackingStatusCommandHandler creates a handler for status changes.
// Requires a TrackingUoWFactory for transactional persistence.
func NewUpdateTrackingStatusCommandHandler(uowFactory TrackingUoWFactory) UpdateTrackingStatusCommandHandler {
	return UpdateTrackingStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change.
// Fails with errs.ErrObjectNotFound when the order has no tracking, with
// tracking.ErrTrackingClosed on a closed tracking, and with
// tracking.ErrInvalidTransition when the state machine forbids the move.
func (h *UpdateTrackingStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackingRepo := uow.TrackingRepository()

	aggregate, err := trackingRepo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Target(), cmd.Notes(), cmd.OccurredAt()); err != nil {
		return err
	}

	if err = trackingRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
