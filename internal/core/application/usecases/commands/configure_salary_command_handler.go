package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/errs"
)

type ConfigureSalaryCommandHandler struct {
	uowFactory UoWFactory
}

func NewConfigureSalaryCommandHandler(uowFactory UoWFactory) ConfigureSalaryCommandHandler {
	return ConfigureSalaryCommandHandler{uowFactory: uowFactory}
}

func (h ConfigureSalaryCommandHandler) Handle(ctx context.Context, cmd ConfigureSalaryCommand) (*performance.Salary, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.StaffRepository().Get(ctx, cmd.StaffID()); err != nil {
		return nil, err
	}

	repo := uow.SalaryRepository()
	current, err := repo.Get(ctx, cmd.StaffID())
	var salary *performance.Salary
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if salary, err = performance.NewSalary(cmd.StaffID(), cmd.Terms()); err != nil {
			return nil, err
		}
		err = repo.Add(ctx, salary)
	case err != nil:
		return nil, err
	default:
		salary, err = performance.RestoreSalary(
			cmd.StaffID(), cmd.Terms(), current.TotalRejectionFees(), current.PendingDeductions(), current.Version(),
		)
		if err != nil {
			return nil, err
		}
		err = repo.Update(ctx, salary)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return salary, nil
}
