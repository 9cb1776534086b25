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

func TestNewUpdateTrackingStatusCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	occurredAt := time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)

	cmd, err := commands.NewUpdateTrackingStatusCommand(orderID, tracking.StatusPickedUp, "left the store", occurredAt)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, tracking.StatusPickedUp, cmd.Target())
	assert.Equal(t, "left the store", cmd.Notes())
	assert.Equal(t, occurredAt, cmd.OccurredAt())
}

func TestNewUpdateTrackingStatusCommand_DefaultsOccurredAt(t *testing.T) {
	cmd, err := commands.NewUpdateTrackingStatusCommand(kernel.NewUUID(), tracking.StatusAccepted, "", time.Time{})
	require.NoError(t, err)
	assert.False(t, cmd.OccurredAt().IsZero())
}

func TestNewUpdateTrackingStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewUpdateTrackingStatusCommand(kernel.NewUUID(), tracking.StatusUnknown, "", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewUpdateTrackingStatusCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewUpdateTrackingStatusCommand(kernel.UUID{}, tracking.StatusAccepted, "", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUpdateTrackingStatusCommand_NotConstructed(t *testing.T) {
	cmd := commands.UpdateTrackingStatusCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateTrackingStatusCommandIsNotConstructed)
}
