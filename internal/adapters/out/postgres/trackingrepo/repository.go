package trackingrepo

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking to the database.
// The unique index on order_id rejects a second tracking for the same order;
// such inserts fail with errs.ErrObjectAlreadyExists. Requires the gorm
// connection to be opened with TranslateError enabled.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("orderID", aggregate.OrderID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tracking to the database using optimistic
// concurrency: the row is rewritten only when its stored version still
// matches the version the aggregate was loaded with. A concurrent writer
// makes the guarded update match zero rows, which surfaces as
// errs.ErrVersionIsInvalid so the caller can reload and retry.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("tracking")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a tracking by ID.
func (r *GormTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Tracking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the tracking for an order.
func (r *GormTrackingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderID", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
