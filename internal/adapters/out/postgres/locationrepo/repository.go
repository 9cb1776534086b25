package locationrepo

import (
	"context"
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

// GormLocationHistoryRepository implements LocationHistoryRepository using GORM.
type GormLocationHistoryRepository struct {
	db *gorm.DB
}

// NewGormLocationHistoryRepository creates a new GORM location history repository.
func NewGormLocationHistoryRepository(db *gorm.DB) *GormLocationHistoryRepository {
	return &GormLocationHistoryRepository{db: db}
}

// Add saves a new location sample to the database.
func (r *GormLocationHistoryRepository) Add(ctx context.Context, sample *tracking.LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	dto := fromDomain(sample)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetMostRecent retrieves the newest sample of a tracking by created_at.
// Returns (nil, nil) when the tracking has no samples.
func (r *GormLocationHistoryRepository) GetMostRecent(
	ctx context.Context,
	trackingID kernel.UUID,
) (*tracking.LocationSample, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto LocationSampleDTO
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetRecent retrieves up to limit samples of a tracking, newest first.
func (r *GormLocationHistoryRepository) GetRecent(
	ctx context.Context,
	trackingID kernel.UUID,
	limit int,
) ([]*tracking.LocationSample, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationSampleDTO
	err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	samples := make([]*tracking.LocationSample, 0, len(dtos))
	for _, dto := range dtos {
		sample, sampleErr := toDomain(dto)
		if sampleErr != nil {
			return nil, sampleErr
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// DeleteOlderThan removes samples created strictly before cutoff while
// keeping the newest sample of every tracking regardless of age, so a last
// known position always survives the sweep. Returns the number of rows
// deleted; a repeated sweep with the same cutoff deletes nothing.
func (r *GormLocationHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM location_samples
		WHERE created_at < ?
		  AND id NOT IN (
			SELECT DISTINCT ON (tracking_id) id
			FROM location_samples
			ORDER BY tracking_id, created_at DESC
		  )
	`, cutoff)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
