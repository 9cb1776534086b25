package commands

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// DefaultRetentionHorizonDays is the retention horizon applied when a purge
// command does not override it.
const DefaultRetentionHorizonDays = 30

var ErrPurgeLocationHistoryCommandIsNotConstructed = errors.New(
	"PurgeLocationHistoryCommand must be created via NewPurgeLocationHistoryCommand constructor",
)

// PurgeLocationHistoryCommand represents a request to delete location samples
// older than the retention horizon. The newest sample of every tracking
// survives regardless of age, so a last known position is always available.
type PurgeLocationHistoryCommand struct { //nolint:recvcheck //using for validation
	horizonDays int
	now         time.Time

	guard guard.ConstructorGuard
}

// NewPurgeLocationHistoryCommand creates a purge command. horizonDays <= 0
// selects DefaultRetentionHorizonDays; a zero now is replaced by the current
// time.
func NewPurgeLocationHistoryCommand(horizonDays int, now time.Time) (PurgeLocationHistoryCommand, error) {
	cmd := PurgeLocationHistoryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setHorizonDays(horizonDays); err != nil {
		return PurgeLocationHistoryCommand{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	cmd.now = now

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeLocationHistoryCommand) Validate() error {
	return c.guard.Validate(ErrPurgeLocationHistoryCommandIsNotConstructed)
}

// HorizonDays returns the retention horizon in days.
func (c PurgeLocationHistoryCommand) HorizonDays() int {
	return c.horizonDays
}

// Cutoff returns the point in time before which samples are purged.
func (c PurgeLocationHistoryCommand) Cutoff() time.Time {
	return c.now.AddDate(0, 0, -c.horizonDays)
}

func (c *PurgeLocationHistoryCommand) setHorizonDays(horizonDays int) error {
	if horizonDays < 0 {
		return errs.NewValueIsInvalidErrorWithCause("horizon",
			fmt.Errorf("%d days is negative", horizonDays))
	}
	if horizonDays == 0 {
		horizonDays = DefaultRetentionHorizonDays
	}

	c.horizonDays = horizonDays
	return nil
}
