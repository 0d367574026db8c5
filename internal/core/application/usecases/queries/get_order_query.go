package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetOrderQueryHandler(uowFactory UoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, q GetOrderQuery) (OrderView, error) {
	if err := q.Validate(); err != nil {
		return OrderView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return OrderView{}, err
	}
	defer done()

	o, err := uow.OrderRepository().Get(ctx, q.OrderID())
	if err != nil {
		return OrderView{}, err
	}
	return NewOrderView(o), nil
}
