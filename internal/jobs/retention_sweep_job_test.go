package jobs

import (
	"context"
	"log/slog"
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/require"
)

type stubHistoryUoW struct{}

func (stubHistoryUoW) Begin(context.Context) error    { return nil }
func (stubHistoryUoW) Commit(context.Context) error   { return nil }
func (stubHistoryUoW) Rollback(context.Context) error { return nil }

func (stubHistoryUoW) LocationHistoryRepository() ports.LocationHistoryRepository { return nil }

type stubHistoryUoWFactory struct{}

func (stubHistoryUoWFactory) Create() commands.LocationHistoryUoW { return stubHistoryUoW{} }

func newSweepJob(schedule string) *RetentionSweepJob {
	handler := commands.NewPurgeLocationHistoryCommandHandler(stubHistoryUoWFactory{})
	return NewRetentionSweepJob(handler, schedule, 30, slog.Default())
}

func TestRetentionSweepJob_Start_InvalidSchedule(t *testing.T) {
	job := newSweepJob("not a schedule")

	err := job.Start()

	require.Error(t, err)
}

func TestRetentionSweepJob_StartAndStop(t *testing.T) {
	job := newSweepJob("0 0 3 * * *")

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartAll_PropagatesScheduleError(t *testing.T) {
	handler := commands.NewPurgeLocationHistoryCommandHandler(stubHistoryUoWFactory{})
	manager := NewJobManager(handler, "bad", 30, slog.Default())

	err := manager.StartAll()

	require.Error(t, err)
	require.Contains(t, err.Error(), "retention sweep job")
}

func TestJobManager_StartAndStopAll(t *testing.T) {
	handler := commands.NewPurgeLocationHistoryCommandHandler(stubHistoryUoWFactory{})
	manager := NewJobManager(handler, "0 0 3 * * *", 30, slog.Default())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
