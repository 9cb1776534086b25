// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tracking/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TrackingRepoFactory provides access to the tracking repository within a transaction.
	TrackingRepoFactory interface {
		TrackingRepository() ports.TrackingRepository
	}

	// LocationHistoryRepoFactory provides access to the location history repository
	// within a transaction.
	LocationHistoryRepoFactory interface {
		LocationHistoryRepository() ports.LocationHistoryRepository
	}

	// TrackingUoW manages transactions for tracking-only operations.
	// Used when commands only modify the tracking aggregate.
	TrackingUoW interface {
		TxManager
		TrackingRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// LocationHistoryUoW manages transactions for history-only operations.
	// Used by the retention sweep, which never touches trackings.
	LocationHistoryUoW interface {
		TxManager
		LocationHistoryRepoFactory
	}

	// LocationHistoryUoWFactory creates new history unit of work instances.
	LocationHistoryUoWFactory interface {
		Create() LocationHistoryUoW
	}

	// UoW manages transactions across the tracking aggregate and its
	// location history. Used by commands that must persist a sample and the
	// updated aggregate atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   trackingRepo := uow.TrackingRepository()
	//   historyRepo := uow.LocationHistoryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		TrackingRepoFactory
		LocationHistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-repository operations.
	UoWFactory interface {
		Create() UoW
	}
)
