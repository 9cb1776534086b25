package commands_test

import (
	"context"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Tracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Tracking), args.Error(1)
}

func (m *MockTrackingRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Tracking), args.Error(1)
}

type MockLocationHistoryRepository struct{ mock.Mock }

func (m *MockLocationHistoryRepository) Add(ctx context.Context, sample *tracking.LocationSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockLocationHistoryRepository) GetMostRecent(ctx context.Context, trackingID kernel.UUID) (*tracking.LocationSample, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.LocationSample), args.Error(1)
}

func (m *MockLocationHistoryRepository) GetRecent(ctx context.Context, trackingID kernel.UUID, limit int) ([]*tracking.LocationSample, error) {
	args := m.Called(ctx, trackingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.LocationSample), args.Error(1)
}

func (m *MockLocationHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) LocationHistoryRepository() ports.LocationHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationHistoryRepository)
}

type MockTrackingUoWFactory struct{ mock.Mock }

func (m *MockTrackingUoWFactory) Create() commands.TrackingUoW {
	args := m.Called()
	return args.Get(0).(commands.TrackingUoW)
}

type MockLocationHistoryUoWFactory struct{ mock.Mock }

func (m *MockLocationHistoryUoWFactory) Create() commands.LocationHistoryUoW {
	args := m.Called()
	return args.Get(0).(commands.LocationHistoryUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
