// Package ports defines repository interfaces for the tracking domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for tracking aggregates.
// At most one tracking exists per order; the repository enforces that
// uniqueness at the storage level.
type TrackingRepository interface {
	// Add persists a new tracking aggregate to storage.
	// Fails when a tracking for the same order already exists.
	Add(ctx context.Context, aggregate *tracking.Tracking) error

	// Update persists changes to an existing tracking aggregate.
	// Uses optimistic concurrency: fails with errs.ErrVersionIsInvalid when
	// the stored version no longer matches the aggregate's version.
	Update(ctx context.Context, aggregate *tracking.Tracking) error

	// Get retrieves a tracking aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such tracking exists.
	Get(ctx context.Context, id kernel.UUID) (*tracking.Tracking, error)

	// GetByOrderID retrieves the tracking for an order.
	// Returns errs.ErrObjectNotFound when the order has no tracking.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)
}
