package commands

import (
	"errors"
	"time"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/pkg/errs"
	"transferops/internal/pkg/guard"
)

var ErrRecomputeAnalyticsCommandIsNotConstructed = errors.New(
	"RecomputeAnalyticsCommand must be created via NewRecomputeAnalyticsCommand constructor",
)

// RecomputeAnalyticsCommand requests a rebuild of the analytics snapshots of
// one organization from the event log, over a half-open time window.
type RecomputeAnalyticsCommand struct { //nolint:recvcheck //using for validation
	orgID kernel.OrgID
	from  time.Time
	to    time.Time

	guard guard.ConstructorGuard
}

// NewRecomputeAnalyticsCommand creates a command to rebuild analytics
// snapshots over [from, to). Validates that the window is non-empty.
func NewRecomputeAnalyticsCommand(
	orgID kernel.OrgID,
	from, to time.Time,
) (RecomputeAnalyticsCommand, error) {
	cmd := RecomputeAnalyticsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orgID.Validate(); err != nil {
		return RecomputeAnalyticsCommand{}, err
	}
	if from.IsZero() || to.IsZero() {
		return RecomputeAnalyticsCommand{}, errs.NewValueIsRequiredError("window")
	}
	if !from.Before(to) {
		return RecomputeAnalyticsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"window",
			errors.New("window start must precede window end"),
		)
	}

	cmd.orgID = orgID
	cmd.from = from.UTC()
	cmd.to = to.UTC()
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecomputeAnalyticsCommandIsNotConstructed if validation fails.
func (c RecomputeAnalyticsCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeAnalyticsCommandIsNotConstructed)
}

// OrgID returns the organization whose snapshots are rebuilt.
func (c RecomputeAnalyticsCommand) OrgID() kernel.OrgID {
	return c.orgID
}

// From returns the inclusive window start, in UTC.
func (c RecomputeAnalyticsCommand) From() time.Time {
	return c.from
}

// To returns the exclusive window end, in UTC.
func (c RecomputeAnalyticsCommand) To() time.Time {
	return c.to
}
