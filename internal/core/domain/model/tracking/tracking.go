package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var (
	// ErrTrackingIsNotConstructed is returned when a Tracking instance was not
	// created through NewTracking or RestoreTracking.
	ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking or RestoreTracking constructor")

	// ErrTrackingClosed is returned when any mutation is attempted on a
	// tracking that already reached a terminal status.
	ErrTrackingClosed = errors.New("tracking is closed")
)

// Tracking is the aggregate root describing one order's delivery lifecycle,
// from courier assignment through delivery or cancellation.
//
// Tracking maintains these invariants:
//   - at most one tracking exists per order (enforced by persistence)
//   - isActive is true exactly while the status is non-terminal
//   - transition timestamps are set once, on first entry into a status
//   - totalDistanceKm never decreases while the tracking is active
//   - every mutation on a closed tracking fails with ErrTrackingClosed
//
// All fields are private; instances are created through NewTracking (new
// deliveries) or RestoreTracking (reconstruction from persistence).
type Tracking struct {
	// id is the unique identifier of the tracking
	id kernel.UUID

	// orderID references the order this tracking belongs to (unique)
	orderID kernel.UUID

	// courierID references the courier executing the delivery
	courierID kernel.UUID

	// pickup is the pickup location, when known
	pickup        *kernel.GeoPoint
	pickupAddress string

	// delivery is the destination, when known; drives ETA computation
	delivery        *kernel.GeoPoint
	deliveryAddress string

	// status is the current lifecycle state
	status Status

	// transition timestamps; assignedAt is set at creation and immutable,
	// the rest are set once when the corresponding transition first occurs
	assignedAt        time.Time
	acceptedAt        *time.Time
	pickupStartedAt   *time.Time
	pickedUpAt        *time.Time
	deliveryStartedAt *time.Time
	deliveredAt       *time.Time

	// derived aggregates maintained by location updates
	totalDistanceKm      float64
	estimatedDistanceKm  float64
	estimatedArrivalTime *time.Time
	lastKnownPosition    *kernel.GeoPoint
	lastLocationUpdate   *time.Time

	// isActive is false once the tracking reaches delivered or cancelled
	isActive bool

	// notes is an append-only log of dated status-change annotations
	notes string

	// version supports compare-and-swap persistence updates
	version int64

	// isConstructed ensures the tracking was created via a constructor
	isConstructed bool
}

// NewTracking creates a tracking for an order that just had a courier
// assigned. The tracking starts in StatusAssigned, active, with assignedAt
// recorded. Pickup and delivery points are optional; when a point is provided
// it must be properly constructed.
func NewTracking(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	pickup *kernel.GeoPoint,
	pickupAddress string,
	delivery *kernel.GeoPoint,
	deliveryAddress string,
	assignedAt time.Time,
) (*Tracking, error) {
	t := &Tracking{
		status:        StatusAssigned,
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setOrderID(orderID),
		t.setCourierID(courierID),
		t.setPickup(pickup, pickupAddress),
		t.setDelivery(delivery, deliveryAddress),
		t.setAssignedAt(assignedAt),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTrackingParams carries the persisted state of a tracking for
// reconstruction. Used only by persistence adapters.
type RestoreTrackingParams struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	CourierID            kernel.UUID
	Pickup               *kernel.GeoPoint
	PickupAddress        string
	Delivery             *kernel.GeoPoint
	DeliveryAddress      string
	Status               Status
	AssignedAt           time.Time
	AcceptedAt           *time.Time
	PickupStartedAt      *time.Time
	PickedUpAt           *time.Time
	DeliveryStartedAt    *time.Time
	DeliveredAt          *time.Time
	TotalDistanceKm      float64
	EstimatedDistanceKm  float64
	EstimatedArrivalTime *time.Time
	LastKnownPosition    *kernel.GeoPoint
	LastLocationUpdate   *time.Time
	IsActive             bool
	Notes                string
	Version              int64
}

// RestoreTracking reconstructs a tracking from persistence. Identity and
// status are validated, and the isActive flag must agree with the status
// (active exactly while non-terminal).
func RestoreTracking(p RestoreTrackingParams) (*Tracking, error) {
	t := &Tracking{
		status:        p.Status,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(p.ID),
		t.setOrderID(p.OrderID),
		t.setCourierID(p.CourierID),
		t.setPickup(p.Pickup, p.PickupAddress),
		t.setDelivery(p.Delivery, p.DeliveryAddress),
		t.setAssignedAt(p.AssignedAt),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.IsActive == p.Status.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause("isActive",
			fmt.Errorf("is_active=%t contradicts status %s", p.IsActive, p.Status))
	}

	if p.TotalDistanceKm < 0 {
		return nil, errs.NewValueIsInvalidError("totalDistanceKm")
	}

	t.acceptedAt = p.AcceptedAt
	t.pickupStartedAt = p.PickupStartedAt
	t.pickedUpAt = p.PickedUpAt
	t.deliveryStartedAt = p.DeliveryStartedAt
	t.deliveredAt = p.DeliveredAt
	t.totalDistanceKm = p.TotalDistanceKm
	t.estimatedDistanceKm = p.EstimatedDistanceKm
	t.estimatedArrivalTime = p.EstimatedArrivalTime
	t.lastKnownPosition = p.LastKnownPosition
	t.lastLocationUpdate = p.LastLocationUpdate
	t.isActive = p.IsActive
	t.notes = p.Notes
	t.version = p.Version

	return t, nil
}

// Validate ensures the instance was created through a constructor.
func (t *Tracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

// IsEqual compares two trackings by identifier.
func (t *Tracking) IsEqual(other *Tracking) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the tracking's unique identifier.
func (t *Tracking) ID() kernel.UUID {
	return t.id
}

// OrderID returns the identifier of the tracked order.
func (t *Tracking) OrderID() kernel.UUID {
	return t.orderID
}

// CourierID returns the identifier of the assigned courier.
func (t *Tracking) CourierID() kernel.UUID {
	return t.courierID
}

// Pickup returns the pickup point, or nil when unknown.
func (t *Tracking) Pickup() *kernel.GeoPoint {
	return t.pickup
}

// PickupAddress returns the free-text pickup address, possibly empty.
func (t *Tracking) PickupAddress() string {
	return t.pickupAddress
}

// Delivery returns the destination point, or nil when unknown.
func (t *Tracking) Delivery() *kernel.GeoPoint {
	return t.delivery
}

// DeliveryAddress returns the free-text delivery address, possibly empty.
func (t *Tracking) DeliveryAddress() string {
	return t.deliveryAddress
}

// Status returns the current lifecycle status.
func (t *Tracking) Status() Status {
	return t.status
}

// AssignedAt returns the creation timestamp of the tracking.
func (t *Tracking) AssignedAt() time.Time {
	return t.assignedAt
}

// AcceptedAt returns when the courier accepted, or nil.
func (t *Tracking) AcceptedAt() *time.Time {
	return t.acceptedAt
}

// PickupStartedAt returns when the courier started toward pickup, or nil.
func (t *Tracking) PickupStartedAt() *time.Time {
	return t.pickupStartedAt
}

// PickedUpAt returns when the package was collected, or nil.
func (t *Tracking) PickedUpAt() *time.Time {
	return t.pickedUpAt
}

// DeliveryStartedAt returns when the courier started toward the destination,
// or nil.
func (t *Tracking) DeliveryStartedAt() *time.Time {
	return t.deliveryStartedAt
}

// DeliveredAt returns the delivery completion time, or nil.
func (t *Tracking) DeliveredAt() *time.Time {
	return t.deliveredAt
}

// TotalDistanceKm returns the accumulated travelled distance.
func (t *Tracking) TotalDistanceKm() float64 {
	return t.totalDistanceKm
}

// EstimatedDistanceKm returns the last computed straight-line distance to the
// destination.
func (t *Tracking) EstimatedDistanceKm() float64 {
	return t.estimatedDistanceKm
}

// EstimatedArrivalTime returns the last computed ETA, or nil when no estimate
// exists.
func (t *Tracking) EstimatedArrivalTime() *time.Time {
	return t.estimatedArrivalTime
}

// LastKnownPosition returns the courier's last reported point, or nil.
func (t *Tracking) LastKnownPosition() *kernel.GeoPoint {
	return t.lastKnownPosition
}

// LastLocationUpdate returns when the last location report arrived, or nil.
func (t *Tracking) LastLocationUpdate() *time.Time {
	return t.lastLocationUpdate
}

// IsActive reports whether the tracking still accepts updates.
func (t *Tracking) IsActive() bool {
	return t.isActive
}

// Notes returns the append-only annotation log.
func (t *Tracking) Notes() string {
	return t.notes
}

// Version returns the persistence version used for compare-and-swap updates.
func (t *Tracking) Version() int64 {
	return t.version
}

// ChangeStatus applies a lifecycle transition.
//
// On success the status changes to target, the timestamp associated with
// target is set if it was not set before, terminal targets deactivate the
// tracking, and a dated note line is appended when notes is non-empty.
//
// Fails with ErrTrackingClosed on an inactive tracking and with an
// InvalidTransitionError (unwrapping to ErrInvalidTransition) when the state
// machine forbids the move, including re-application of the current status.
func (t *Tracking) ChangeStatus(target Status, notes string, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.isActive {
		return ErrTrackingClosed
	}

	newStatus, err := t.status.TransitionTo(target)
	if err != nil {
		return err
	}

	t.status = newStatus
	t.markTransition(target, at)

	if target.IsTerminal() {
		t.isActive = false
	}

	if notes != "" {
		t.appendNote(notes, at)
	}

	return nil
}

// ApplyLocation records a position report: updates the last known position
// and its timestamp, and adds the (non-negative) distance delta to the
// travelled total. Fails with ErrTrackingClosed on an inactive tracking.
func (t *Tracking) ApplyLocation(point kernel.GeoPoint, deltaKm float64, at time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.isActive {
		return ErrTrackingClosed
	}
	if err := point.Validate(); err != nil {
		return err
	}
	if deltaKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("distance delta",
			fmt.Errorf("%f is negative", deltaKm))
	}

	t.lastKnownPosition = &point
	t.lastLocationUpdate = &at
	t.totalDistanceKm += deltaKm

	return nil
}

// SetArrivalEstimate records the straight-line remaining distance and the
// computed ETA (nil when no estimate could be made). Fails with
// ErrTrackingClosed on an inactive tracking.
func (t *Tracking) SetArrivalEstimate(distanceKm float64, eta *time.Time) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !t.isActive {
		return ErrTrackingClosed
	}
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("estimated distance")
	}

	t.estimatedDistanceKm = distanceKm
	t.estimatedArrivalTime = eta

	return nil
}

// markTransition records the set-once timestamp for the entered status.
// Skipped-over statuses keep their timestamps unset; cancelled has no
// timestamp field beyond the status itself.
func (t *Tracking) markTransition(target Status, at time.Time) {
	switch target { //nolint:exhaustive // only timestamped statuses matter here
	case StatusAccepted:
		if t.acceptedAt == nil {
			t.acceptedAt = &at
		}
	case StatusEnRouteToPickup:
		if t.pickupStartedAt == nil {
			t.pickupStartedAt = &at
		}
	case StatusPickedUp:
		if t.pickedUpAt == nil {
			t.pickedUpAt = &at
		}
	case StatusEnRouteToDelivery:
		if t.deliveryStartedAt == nil {
			t.deliveryStartedAt = &at
		}
	case StatusDelivered:
		if t.deliveredAt == nil {
			t.deliveredAt = &at
		}
	}
}

// appendNote adds a dated line to the append-only annotation log.
func (t *Tracking) appendNote(note string, at time.Time) {
	line := fmt.Sprintf("[%s] %s", at.UTC().Format(time.RFC3339), strings.TrimSpace(note))
	if t.notes == "" {
		t.notes = line
		return
	}
	t.notes += "\n" + line
}

// setID validates and sets the tracking identifier.
func (t *Tracking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

// setOrderID validates and sets the order reference.
func (t *Tracking) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

// setCourierID validates and sets the courier reference. A tracking cannot
// exist without a courier: it is created by the courier-assigned event.
func (t *Tracking) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courier", err)
	}
	t.courierID = courierID
	return nil
}

// setPickup validates and sets the optional pickup point and address.
func (t *Tracking) setPickup(point *kernel.GeoPoint, address string) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
	}
	t.pickup = point
	t.pickupAddress = address
	return nil
}

// setDelivery validates and sets the optional destination point and address.
func (t *Tracking) setDelivery(point *kernel.GeoPoint, address string) error {
	if point != nil {
		if err := point.Validate(); err != nil {
			return err
		}
	}
	t.delivery = point
	t.deliveryAddress = address
	return nil
}

// setAssignedAt validates and sets the immutable creation timestamp.
func (t *Tracking) setAssignedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("assignedAt")
	}
	t.assignedAt = at
	return nil
}
