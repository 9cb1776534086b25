package ports

import (
	"context"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// LocationHistoryRepository defines the persistence contract for courier
// position reports. Samples are append-only; the only deletion path is the
// retention sweep.
type LocationHistoryRepository interface {
	// Add persists a new location sample.
	Add(ctx context.Context, sample *tracking.LocationSample) error

	// GetMostRecent retrieves the newest sample of a tracking, by createdAt.
	// Returns (nil, nil) when the tracking has no samples yet.
	GetMostRecent(ctx context.Context, trackingID kernel.UUID) (*tracking.LocationSample, error)

	// GetRecent retrieves up to limit samples of a tracking, newest first.
	GetRecent(ctx context.Context, trackingID kernel.UUID, limit int) ([]*tracking.LocationSample, error)

	// DeleteOlderThan removes samples created strictly before cutoff,
	// keeping the newest sample of every tracking regardless of age.
	// Returns the number of samples removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
