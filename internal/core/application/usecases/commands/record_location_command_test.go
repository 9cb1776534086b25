package commands_test

import (
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewRecordLocationCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	point, _ := kernel.NewGeoPoint(24.71, 46.72)
	recordedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cmd, err := commands.NewRecordLocationCommand(orderID, point, floatPtr(8.5), floatPtr(30), floatPtr(180), tracking.StatusUnknown, recordedAt)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, recordedAt, cmd.RecordedAt())
	assert.Equal(t, tracking.StatusUnknown, cmd.StatusAtSample())
	require.NotNil(t, cmd.SpeedKmh())
	assert.InDelta(t, 30.0, *cmd.SpeedKmh(), 1e-9)
}

func TestNewRecordLocationCommand_WithStatusAnnotation(t *testing.T) {
	point, _ := kernel.NewGeoPoint(24.71, 46.72)

	cmd, err := commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, nil, nil, tracking.StatusEnRouteToDelivery, time.Now())
	require.NoError(t, err)
	assert.Equal(t, tracking.StatusEnRouteToDelivery, cmd.StatusAtSample())
}

func TestNewRecordLocationCommand_DefaultsRecordedAt(t *testing.T) {
	point, _ := kernel.NewGeoPoint(24.71, 46.72)
	cmd, err := commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, nil, nil, tracking.StatusUnknown, time.Time{})
	require.NoError(t, err)
	assert.False(t, cmd.RecordedAt().IsZero())
}

func TestNewRecordLocationCommand_InvalidPoint(t *testing.T) {
	var point kernel.GeoPoint // zero value, not constructed
	_, err := commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, nil, nil, tracking.StatusUnknown, time.Now())
	require.Error(t, err)
}

func TestNewRecordLocationCommand_InvalidMetadata(t *testing.T) {
	point, _ := kernel.NewGeoPoint(24.71, 46.72)

	_, err := commands.NewRecordLocationCommand(kernel.NewUUID(), point, floatPtr(-1), nil, nil, tracking.StatusUnknown, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, floatPtr(-1), nil, tracking.StatusUnknown, time.Now())
	require.Error(t, err)

	_, err = commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, nil, floatPtr(361), tracking.StatusUnknown, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRecordLocationCommand(kernel.NewUUID(), point, nil, nil, nil, tracking.Status(99), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRecordLocationCommand_NotConstructed(t *testing.T) {
	cmd := commands.RecordLocationCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrRecordLocationCommandIsNotConstructed)
}
