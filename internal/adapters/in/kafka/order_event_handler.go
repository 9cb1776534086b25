package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"github.com/pkg/errors"
)

// StatusCourierAssigned is the order event status that starts a tracking.
// Every other status is translated through MapOrderStatus.
const StatusCourierAssigned = "courier_assigned"

// MapOrderStatus translates an order lifecycle status into the tracking
// status it corresponds to. The second return reports whether the status
// has a tracking counterpart at all; order statuses without one (basket
// and payment phases, or the assignment handled separately) are skipped
// by the consumer.
func MapOrderStatus(s string) (tracking.Status, bool) {
	mapped, ok := map[string]tracking.Status{
		"courier_accepted":     tracking.StatusAccepted,
		"accepted":             tracking.StatusAccepted,
		"en_route_to_pickup":   tracking.StatusEnRouteToPickup,
		"picked_up":            tracking.StatusPickedUp,
		"en_route_to_delivery": tracking.StatusEnRouteToDelivery,
		"delivered":            tracking.StatusDelivered,
		"cancelled":            tracking.StatusCancelled,
	}[s]
	return mapped, ok
}

// OrderEventPoint carries a coordinate pair inside an order event.
type OrderEventPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OrderEvent is the payload published by the order service on every order
// status change. Pickup and delivery details are present on assignment
// events and may be omitted afterwards.
type OrderEvent struct {
	OrderID         string           `json:"order_id"`
	CourierID       string           `json:"courier_id"`
	Status          string           `json:"status"`
	Pickup          *OrderEventPoint `json:"pickup,omitempty"`
	PickupAddress   string           `json:"pickup_address,omitempty"`
	Delivery        *OrderEventPoint `json:"delivery,omitempty"`
	DeliveryAddress string           `json:"delivery_address,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	OccurredAt      time.Time        `json:"occurred_at"`
}

// OrderEventHandler turns order events into tracking commands.
// A courier assignment creates the tracking; mapped statuses move it
// through its lifecycle. Rejected transitions and events for unknown or
// closed trackings are logged and acknowledged rather than redelivered:
// they reflect the producer's state, which a retry cannot change.
type OrderEventHandler struct {
	createTrackingHandler commands.CreateTrackingCommandHandler
	updateStatusHandler   commands.UpdateTrackingStatusCommandHandler
	logger                *slog.Logger
}

// NewOrderEventHandler creates a handler wired to the tracking use cases.
func NewOrderEventHandler(
	createTrackingHandler commands.CreateTrackingCommandHandler,
	updateStatusHandler commands.UpdateTrackingStatusCommandHandler,
	logger *slog.Logger,
) *OrderEventHandler {
	return &OrderEventHandler{
		createTrackingHandler: createTrackingHandler,
		updateStatusHandler:   updateStatusHandler,
		logger:                logger.With("component", "order_event_handler"),
	}
}

// Handle decodes an order event and dispatches it to the matching use case.
// The message key duplicates the order identifier and is ignored; the
// payload carries everything needed.
func (h *OrderEventHandler) Handle(ctx context.Context) func(key, value []byte) error {
	return func(_, value []byte) error {
		var event OrderEvent
		if err := json.Unmarshal(value, &event); err != nil {
			return errors.Wrap(err, "decode order event")
		}

		if event.Status == StatusCourierAssigned {
			return h.createTracking(ctx, event)
		}
		return h.updateStatus(ctx, event)
	}
}

func (h *OrderEventHandler) createTracking(ctx context.Context, event OrderEvent) error {
	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return errors.Wrap(err, "order id")
	}
	courierID, err := kernel.UUIDFromString(event.CourierID)
	if err != nil {
		return errors.Wrap(err, "courier id")
	}

	pickup, err := eventPoint(event.Pickup)
	if err != nil {
		return errors.Wrap(err, "pickup point")
	}
	delivery, err := eventPoint(event.Delivery)
	if err != nil {
		return errors.Wrap(err, "delivery point")
	}

	cmd, err := commands.NewCreateTrackingCommand(
		orderID, courierID,
		pickup, event.PickupAddress,
		delivery, event.DeliveryAddress,
		event.OccurredAt,
	)
	if err != nil {
		return errors.Wrap(err, "create tracking command")
	}

	_, err = h.createTrackingHandler.Handle(ctx, cmd)
	return err
}

func (h *OrderEventHandler) updateStatus(ctx context.Context, event OrderEvent) error {
	target, ok := MapOrderStatus(event.Status)
	if !ok {
		h.logger.DebugContext(ctx, "Skipping order event without tracking counterpart",
			"order_id", event.OrderID, "status", event.Status)
		return nil
	}

	orderID, err := kernel.UUIDFromString(event.OrderID)
	if err != nil {
		return errors.Wrap(err, "order id")
	}

	cmd, err := commands.NewUpdateTrackingStatusCommand(
		orderID, target, event.Notes, event.OccurredAt,
	)
	if err != nil {
		return errors.Wrap(err, "update status command")
	}

	if err = h.updateStatusHandler.Handle(ctx, cmd); err != nil {
		if isStateError(err) {
			h.logger.WarnContext(ctx, "Order event not applicable to tracking",
				"order_id", event.OrderID, "status", event.Status, "error", err)
			return nil
		}
		return err
	}

	return nil
}

// isStateError reports whether the error reflects the tracking's state
// rather than a transient condition worth redelivering.
func isStateError(err error) bool {
	return stderrors.Is(err, tracking.ErrInvalidTransition) ||
		stderrors.Is(err, tracking.ErrTrackingClosed) ||
		stderrors.Is(err, errs.ErrObjectNotFound)
}

func eventPoint(p *OrderEventPoint) (*kernel.GeoPoint, error) {
	if p == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(p.Lat, p.Lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
