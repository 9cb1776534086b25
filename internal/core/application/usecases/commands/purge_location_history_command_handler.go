package commands

import (
	"context"
)

// PurgeLocationHistoryCommandHandler handles retention sweeps over the
// location history. The sweep is idempotent: running it twice with the same
// cutoff deletes nothing the second time.
//
// Example:
//
//	handler := NewPurgeLocationHistoryCommandHandler(uowFactory)
//	cmd, _ := NewPurgeLocationHistoryCommand(0, time.Now()) // default horizon
//
//	deleted, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("retention sweep failed: %w", err)
//	}
type PurgeLocationHistoryCommandHandler struct {
	uowFactory LocationHistoryUoWFactory
}

// NewPurgeLocationHistoryCommandHandler creates a handler for retention sweeps.
// Requires a LocationHistoryUoWFactory for transactional persistence.
func NewPurgeLocationHistoryCommandHandler(uowFactory LocationHistoryUoWFactory) PurgeLocationHistoryCommandHandler {
	return PurgeLocationHistoryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the purge and returns the number of samples deleted.
func (h *PurgeLocationHistoryCommandHandler) Handle(ctx context.Context, cmd PurgeLocationHistoryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.LocationHistoryRepository().DeleteOlderThan(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deleted, nil
}
