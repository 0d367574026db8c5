package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/commission"
)

type ComputeCommissionCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewComputeCommissionCommandHandler(uowFactory UoWFactory, clock Clock) ComputeCommissionCommandHandler {
	return ComputeCommissionCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the accrued entry. Repeating an invoice id returns the entry
// stored the first time and writes nothing.
func (h ComputeCommissionCommandHandler) Handle(ctx context.Context, cmd ComputeCommissionCommand) (commission.Entry, error) {
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

	entry, created, err := plan.Compute(cmd.InvoiceID(), cmd.OrderCount(), cmd.Amount(), h.clock.Now())
	if err != nil {
		return commission.Entry{}, err
	}
	if !created {
		return entry, nil
	}

	if err = repo.Update(ctx, plan); err != nil {
		return commission.Entry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return commission.Entry{}, err
	}

	return entry, nil
}
