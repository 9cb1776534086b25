package commands

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/guard"
)

var ErrUpdateTrackingStatusCommandIsNotConstructed = errors.New(
	"UpdateTrackingStatusCommand must be created via NewUpdateTrackingStatusCommand constructor",
)

// UpdateTrackingStatusCommand represents a request to move an order's
// tracking to a new lifecycle status. Notes are optional free text appended
// to the tracking's annotation log; a zero occurredAt is replaced by the
// current time.
type UpdateTrackingStatusCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	target     tracking.Status
	notes      string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewUpdateTrackingStatusCommand creates a status-change command.
// Validates the order identifier and that target is a defined status; whether
// the transition itself is allowed is decided by the aggregate.
func NewUpdateTrackingStatusCommand(
	orderID kernel.UUID,
	target tracking.Status,
	notes string,
	occurredAt time.Time,
) (UpdateTrackingStatusCommand, error) {
	cmd := UpdateTrackingStatusCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
	); err != nil {
		return UpdateTrackingStatusCommand{}, err
	}

	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	cmd.occurredAt = occurredAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c UpdateTrackingStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested lifecycle status.
func (c UpdateTrackingStatusCommand) Target() tracking.Status {
	return c.target
}

// Notes returns the optional annotation, possibly empty.
func (c UpdateTrackingStatusCommand) Notes() string {
	return c.notes
}

// OccurredAt returns when the status change happened.
func (c UpdateTrackingStatusCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *UpdateTrackingStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingStatusCommand) setTarget(target tracking.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
