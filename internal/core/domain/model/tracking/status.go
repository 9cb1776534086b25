package tracking

import (
	"errors"
	"fmt"

	"tracking/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for every rejected status change,
// including no-op re-application of the current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of a delivery tracking.
// It implements a state machine with a strictly forward chain:
//
//	assigned -> accepted -> en_route_to_pickup -> picked_up -> en_route_to_delivery -> delivered
//
// Skipping forward is allowed because upstream status updates may arrive out
// of fine-grained order; moving backward or re-entering the current status is
// not. cancelled is reachable from every non-terminal status. delivered and
// cancelled are terminal: no transition leaves them.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned is the initial status, set when a courier is bound to
	// the order and the tracking is created.
	StatusAssigned

	// StatusAccepted indicates the courier confirmed the assignment.
	StatusAccepted

	// StatusEnRouteToPickup indicates the courier is heading to the pickup
	// location.
	StatusEnRouteToPickup

	// StatusPickedUp indicates the courier has collected the package.
	StatusPickedUp

	// StatusEnRouteToDelivery indicates the courier is heading to the
	// delivery destination.
	StatusEnRouteToDelivery

	// StatusDelivered indicates a completed delivery. Terminal.
	StatusDelivered

	// StatusCancelled indicates an aborted delivery. Terminal.
	StatusCancelled
)

// getStatusStrings returns the wire representation of every status, including
// the invalid zero value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:           "unknown",
		StatusAssigned:          "assigned",
		StatusAccepted:          "accepted",
		StatusEnRouteToPickup:   "en_route_to_pickup",
		StatusPickedUp:          "picked_up",
		StatusEnRouteToDelivery: "en_route_to_delivery",
		StatusDelivered:         "delivered",
		StatusCancelled:         "cancelled",
	}
}

// getValidStatusStrings returns only the statuses a tracking may actually hold.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAssigned:          "assigned",
		StatusAccepted:          "accepted",
		StatusEnRouteToPickup:   "en_route_to_pickup",
		StatusPickedUp:          "picked_up",
		StatusEnRouteToDelivery: "en_route_to_delivery",
		StatusDelivered:         "delivered",
		StatusCancelled:         "cancelled",
	}
}

// StatusFromString parses the wire form of a status ("picked_up",
// "en_route_to_delivery", ...). Returns an error for unknown strings;
// used when statuses arrive from the API layer or order events.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid tracking status", s))
}

// Validate checks that the Status holds one of the defined lifecycle values.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status. Implements fmt.Stringer and is
// safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status ends the tracking lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle allows moving from s to
// target. The rules are:
//   - terminal statuses allow nothing
//   - cancelled is reachable from any non-terminal status
//   - otherwise target must lie strictly ahead of s on the forward chain
//     (skips allowed, backward and no-op rejected)
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return true
	}

	// Forward chain: the constants are declared in lifecycle order.
	return target > s && target <= StatusDelivered
}

// TransitionTo returns the new status after a transition to target, or an
// InvalidTransitionError if the lifecycle forbids it.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return StatusUnknown, NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// InvalidTransitionError reports a rejected status change.
// It unwraps to ErrInvalidTransition for classification via errors.Is.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// source and target statuses.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
