package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/pkg/errs"
)

type ConfigureCommissionCommandHandler struct {
	uowFactory UoWFactory
}

func NewConfigureCommissionCommandHandler(uowFactory UoWFactory) ConfigureCommissionCommandHandler {
	return ConfigureCommissionCommandHandler{uowFactory: uowFactory}
}

func (h ConfigureCommissionCommandHandler) Handle(
	ctx context.Context,
	cmd ConfigureCommissionCommand,
) (*commission.StaffCommission, error) {
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

	repo := uow.CommissionRepository()
	plan, err := repo.Get(ctx, cmd.StaffID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		plan, err = commission.NewStaffCommission(cmd.StaffID(), cmd.Currency(), cmd.Tiers())
		if err != nil {
			return nil, err
		}
		err = repo.Add(ctx, plan)
	case err != nil:
		return nil, err
	default:
		if !plan.Currency().IsEqual(cmd.Currency()) {
			return nil, errs.NewValueIsInvalidError("commission currency")
		}
		if err = plan.SetTiers(cmd.Tiers()); err != nil {
			return nil, err
		}
		err = repo.Update(ctx, plan)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return plan, nil
}
