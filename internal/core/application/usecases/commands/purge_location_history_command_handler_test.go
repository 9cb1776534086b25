package commands_test

import (
	"errors"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPurgeLocationHistoryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)
	cmd, _ := commands.NewPurgeLocationHistoryCommand(30, now)

	repo := new(MockLocationHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LocationHistoryRepository").Return(repo).Once(),
		repo.On("DeleteOlderThan", mock.Anything, cmd.Cutoff()).Return(int64(42), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLocationHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeLocationHistoryCommandHandler(factory)
	deleted, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.EqualValues(t, 42, deleted)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPurgeLocationHistoryCommandHandler_Handle_NothingToDelete(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPurgeLocationHistoryCommand(30, time.Now().UTC())

	repo := new(MockLocationHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LocationHistoryRepository").Return(repo).Once(),
		repo.On("DeleteOlderThan", mock.Anything, cmd.Cutoff()).Return(int64(0), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLocationHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeLocationHistoryCommandHandler(factory)
	deleted, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestPurgeLocationHistoryCommandHandler_Handle_DeleteError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewPurgeLocationHistoryCommand(30, time.Now().UTC())

	repo := new(MockLocationHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("LocationHistoryRepository").Return(repo).Once(),
		repo.On("DeleteOlderThan", mock.Anything, cmd.Cutoff()).
			Return(int64(0), errors.New("delete error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLocationHistoryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeLocationHistoryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPurgeLocationHistoryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PurgeLocationHistoryCommand{} // not constructed properly
	factory := new(MockLocationHistoryUoWFactory)
	h := commands.NewPurgeLocationHistoryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}
