package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type AssignOrderStaffCommandHandler struct {
	uowFactory UoWFactory
	assigner   services.StaffAssigner
}

func NewAssignOrderStaffCommandHandler(uowFactory UoWFactory) AssignOrderStaffCommandHandler {
	return AssignOrderStaffCommandHandler{
		uowFactory: uowFactory,
		assigner:   services.NewStaffAssigner(),
	}
}

func (h AssignOrderStaffCommandHandler) Handle(ctx context.Context, cmd AssignOrderStaffCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	member, err := uow.StaffRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return nil, err
	}

	if err = h.assigner.Assign(o, cmd.Party(), member); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
