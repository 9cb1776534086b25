// Package tracking provides domain entities and business logic for managing
// the lifecycle of a physical delivery. It implements the Tracking aggregate
// root together with the Status state machine and the immutable
// LocationSample entity.
//
// The package includes:
//   - Tracking: the aggregate root describing one order's delivery lifecycle,
//     its transition timestamps, and derived distance/ETA aggregates
//   - Status: a state machine that enforces valid lifecycle transitions
//   - LocationSample: one timestamped courier position report
//
// Key business rules:
//   - A tracking starts in the assigned status and stays active until it
//     reaches a terminal status (delivered or cancelled)
//   - The forward chain assigned -> accepted -> en_route_to_pickup ->
//     picked_up -> en_route_to_delivery -> delivered allows skips forward,
//     never backward; cancelled is reachable from any non-terminal status
//   - Transition timestamps are set once, on the first entry into a status
//   - Closed trackings reject every mutation with ErrTrackingClosed
//   - Total travelled distance is monotonically non-decreasing while active
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package tracking
