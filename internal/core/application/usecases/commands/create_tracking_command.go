package commands

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrCreateTrackingCommandIsNotConstructed = errors.New(
	"CreateTrackingCommand must be created via NewCreateTrackingCommand constructor",
)

// CreateTrackingCommand represents a request to start tracking an order's
// delivery after a courier has been assigned. Pickup and delivery points are
// optional; when coordinates are supplied they must be valid.
//
// Example:
//
//	cmd, err := NewCreateTrackingCommand(orderID, courierID, pickup, "12 Olaya St",
//	    delivery, "8 King Fahd Rd", time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid tracking data: %w", err)
//	}
//
//	handler := NewCreateTrackingCommandHandler(uowFactory)
//	trackingID, err := handler.Handle(ctx, cmd)
type CreateTrackingCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	courierID       kernel.UUID
	pickup          *kernel.GeoPoint
	pickupAddress   string
	delivery        *kernel.GeoPoint
	deliveryAddress string
	assignedAt      time.Time

	guard guard.ConstructorGuard
}

// NewCreateTrackingCommand creates a command to start tracking a delivery.
// Validates identifiers and any supplied coordinates; a zero assignedAt is
// replaced by the current time.
func NewCreateTrackingCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickup *kernel.GeoPoint,
	pickupAddress string,
	delivery *kernel.GeoPoint,
	deliveryAddress string,
	assignedAt time.Time,
) (CreateTrackingCommand, error) {
	cmd := CreateTrackingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCourierID(courierID),
		cmd.setPickup(pickup, pickupAddress),
		cmd.setDelivery(delivery, deliveryAddress),
	); err != nil {
		return CreateTrackingCommand{}, err
	}

	if assignedAt.IsZero() {
		assignedAt = time.Now().UTC()
	}
	cmd.assignedAt = assignedAt

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrackingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to track.
func (c CreateTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the assigned courier.
func (c CreateTrackingCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Pickup returns the optional pickup point.
func (c CreateTrackingCommand) Pickup() *kernel.GeoPoint {
	return c.pickup
}

// PickupAddress returns the free-text pickup address, possibly empty.
func (c CreateTrackingCommand) PickupAddress() string {
	return c.pickupAddress
}

// Delivery returns the optional destination point.
func (c CreateTrackingCommand) Delivery() *kernel.GeoPoint {
	return c.delivery
}

// DeliveryAddress returns the free-text delivery address, possibly empty.
func (c CreateTrackingCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// AssignedAt returns when the courier was bound to the order.
func (c CreateTrackingCommand) AssignedAt() time.Time {
	return c.assignedAt
}

func (c *CreateTrackingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateTrackingCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier", err)
	}

	c.courierID = courierID
	return nil
}

func (c *CreateTrackingCommand) setPickup(point *kernel.GeoPoint, address string) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
	}

	c.pickup = point
	c.pickupAddress = address
	return nil
}

func (c *CreateTrackingCommand) setDelivery(point *kernel.GeoPoint, address string) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
	}

	c.delivery = point
	c.deliveryAddress = address
	return nil
}
