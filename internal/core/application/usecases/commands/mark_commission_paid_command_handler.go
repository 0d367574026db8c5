package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/commission"
)

type MarkCommissionPaidCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewMarkCommissionPaidCommandHandler(uowFactory UoWFactory, clock Clock) MarkCommissionPaidCommandHandler {
	return MarkCommissionPaidCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h MarkCommissionPaidCommandHandler) Handle(ctx context.Context, cmd MarkCommissionPaidCommand) (commission.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return commission.Entry{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return commission.Entry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CommissionRepository()
	plan, err := repo.Get(ctx, cmd.StaffID())
	if err != nil {
		return commission.Entry{}, err
	}

	entry, err := plan.MarkPaid(cmd.EntryID(), h.clock.Now())
	if err != nil {
		return commission.Entry{}, err
	}

	if err = repo.Update(ctx, plan); err != nil {
		return commission.Entry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return commission.Entry{}, err
	}

	return entry, nil
}
