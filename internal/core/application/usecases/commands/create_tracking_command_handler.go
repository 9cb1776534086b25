package commands

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"
)

// CreateTrackingCommandHandler handles the business logic for opening a
// tracking. Creation is idempotent per order: if a tracking already exists
// for the order, its identifier is returned and nothing changes.
//
// Example:
//
//	handler := NewCreateTrackingCommandHandler(uowFactory)
//	cmd, _ := NewCreateTrackingCommand(orderID, courierID, nil, "", nil, "", time.Now())
//
//	trackingID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to open tracking: %w", err)
//	}
type CreateTrackingCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewCreateTrackingCommandHandler creates a handler for tracking creation.
// Requires a TrackingUoWFactory for transactional persistence.
func NewCreateTrackingCommandHandler(uowFactory TrackingUoWFactory) CreateTrackingCommandHandler {
	return CreateTrackingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the tracking creation command and returns the tracking's
// identifier. When the order already has a tracking, the existing identifier
// is returned regardless of the tracking's state. A concurrent create racing
// on the order uniqueness constraint is resolved by re-reading the winner.
func (h *CreateTrackingCommandHandler) Handle(ctx context.Context, cmd CreateTrackingCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackingRepo := uow.TrackingRepository()

	existing, err := trackingRepo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		if commitErr := uow.Commit(ctx); commitErr != nil {
			return kernel.UUID{}, commitErr
		}
		return existing.ID(), nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	aggregate, err := tracking.NewTracking(
		kernel.NewUUID(),
		cmd.OrderID(),
		cmd.CourierID(),
		cmd.Pickup(), cmd.PickupAddress(),
		cmd.Delivery(), cmd.DeliveryAddress(),
		cmd.AssignedAt(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = trackingRepo.Add(ctx, aggregate); err != nil {
		// Lost the race on the per-order uniqueness constraint.
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return h.getWinner(ctx, cmd.OrderID())
		}
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}

// getWinner re-reads the tracking created by a concurrent request in a fresh
// transaction, since the losing insert poisoned the current one.
func (h *CreateTrackingCommandHandler) getWinner(ctx context.Context, orderID kernel.UUID) (kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	winner, err := uow.TrackingRepository().GetByOrderID(ctx, orderID)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return winner.ID(), nil
}
