package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// transitionHandler runs one state machine operation: load, apply, process the
// recorded event, then write with a version check. A concurrent writer makes
// Update fail with a conflict and nothing is committed.
type transitionHandler struct {
	uowFactory UoWFactory
	clock      Clock
	processor  OrderEventProcessor
}

type transitionFunc func(ctx context.Context, uow ports.UnitOfWork, o *order.Order, at time.Time) error

func (h transitionHandler) run(ctx context.Context, orderID kernel.UUID, apply transitionFunc) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = apply(ctx, uow, o, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = h.processor.Process(ctx, uow, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

type AcceptOrderCommandHandler struct {
	transitionHandler
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, clock Clock, processor OrderEventProcessor) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{transitionHandler{uowFactory: uowFactory, clock: clock, processor: processor}}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.run(ctx, cmd.OrderID(), func(ctx context.Context, uow ports.UnitOfWork, o *order.Order, at time.Time) error {
		prod, err := uow.ProductRepository().Get(ctx, o.ProductID())
		if err != nil {
			return err
		}
		return o.Accept(cmd.Actor(), cmd.Notes(), prod.Services(), at)
	})
}

type RejectOrderCommandHandler struct {
	transitionHandler
}

func NewRejectOrderCommandHandler(uowFactory UoWFactory, clock Clock, processor OrderEventProcessor) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{transitionHandler{uowFactory: uowFactory, clock: clock, processor: processor}}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.run(ctx, cmd.OrderID(), func(_ context.Context, _ ports.UnitOfWork, o *order.Order, at time.Time) error {
		return o.Reject(cmd.Actor(), cmd.Reason(), at)
	})
}

type ResubmitOrderCommandHandler struct {
	transitionHandler
}

func NewResubmitOrderCommandHandler(uowFactory UoWFactory, clock Clock, processor OrderEventProcessor) ResubmitOrderCommandHandler {
	return ResubmitOrderCommandHandler{transitionHandler{uowFactory: uowFactory, clock: clock, processor: processor}}
}

func (h ResubmitOrderCommandHandler) Handle(ctx context.Context, cmd ResubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.run(ctx, cmd.OrderID(), func(_ context.Context, _ ports.UnitOfWork, o *order.Order, at time.Time) error {
		return o.Resubmit(cmd.Actor(), cmd.Notes(), at)
	})
}
