package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
)

type RegisterStaffCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterStaffCommandHandler(uowFactory UoWFactory) RegisterStaffCommandHandler {
	return RegisterStaffCommandHandler{uowFactory: uowFactory}
}

func (h RegisterStaffCommandHandler) Handle(ctx context.Context, cmd RegisterStaffCommand) (*staff.Staff, error) {
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

	if err := uow.StaffRepository().Add(ctx, cmd.Staff()); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cmd.Staff(), nil
}

type RegisterProductCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterProductCommandHandler(uowFactory UoWFactory) RegisterProductCommandHandler {
	return RegisterProductCommandHandler{uowFactory: uowFactory}
}

func (h RegisterProductCommandHandler) Handle(ctx context.Context, cmd RegisterProductCommand) (*product.Product, error) {
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

	if err := uow.ProductRepository().Add(ctx, cmd.Product()); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return cmd.Product(), nil
}
