package commands

import (
	"context"
)

// PruneEarningsCommandHandler deletes earnings records past the retention
// window. Stats are operational, not archival: old records only cost
// storage, so the handler removes them wholesale.
type PruneEarningsCommandHandler struct {
	uowFactory EarningsUoWFactory
}

// NewPruneEarningsCommandHandler creates a handler for earnings pruning.
func NewPruneEarningsCommandHandler(uowFactory EarningsUoWFactory) PruneEarningsCommandHandler {
	return PruneEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes all earnings records for days before the cutoff.
// Returns the number of records removed.
func (h PruneEarningsCommandHandler) Handle(ctx context.Context, command PruneEarningsCommand) (int64, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pruned, err := uow.EarningsRepository().PruneBefore(ctx, command.Cutoff())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return pruned, nil
}
