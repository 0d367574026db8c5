package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	assigner   services.StaffAssigner
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		assigner:   services.NewStaffAssigner(),
	}
}

// Handle creates the order, submits it to sales review and stores it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(cmd.OrderID(), cmd.Number(), cmd.ProductID(), cmd.Amount(), cmd.Countries(), now)
	if err != nil {
		return nil, err
	}
	if err = o.Submit(now); err != nil {
		return nil, err
	}

	if salesID := cmd.SalesID(); salesID != nil {
		member, staffErr := uow.StaffRepository().Get(ctx, *salesID)
		if staffErr != nil {
			return nil, staffErr
		}
		if err = h.assigner.Assign(o, order.SalesParty, member); err != nil {
			return nil, err
		}
	}

	// intake only records StageAdvanced, which has no accounting effect
	o.ClearDomainEvents()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
