package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDeadlineStatusQueryIsNotConstructed = errors.New(
	"GetDeadlineStatusQuery must be created via NewGetDeadlineStatusQuery constructor",
)

// GetDeadlineStatusQuery classifies an order against the deadline of its
// current stage at instant now.
type GetDeadlineStatusQuery struct {
	orderID kernel.UUID
	now     time.Time

	guard guard.ConstructorGuard
}

func NewGetDeadlineStatusQuery(orderID kernel.UUID, now time.Time) (GetDeadlineStatusQuery, error) {
	var nowErr error
	if now.IsZero() {
		nowErr = errs.NewValueIsRequiredError("now")
	}
	if err := errors.Join(orderID.Validate(), nowErr); err != nil {
		return GetDeadlineStatusQuery{}, err
	}
	return GetDeadlineStatusQuery{orderID: orderID, now: now.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetDeadlineStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetDeadlineStatusQueryIsNotConstructed)
}

func (q GetDeadlineStatusQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetDeadlineStatusQuery) Now() time.Time       { return q.now }

// DeadlineStatus is computed on every call and never stored.
type DeadlineStatus struct {
	OrderID            kernel.UUID
	OrderNumber        string
	Stage              order.Status
	DeadlineAt         time.Time
	Remaining          time.Duration
	State              deadline.State
	ResponsibleStaffID string
}

type GetDeadlineStatusQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetDeadlineStatusQueryHandler(uowFactory UoWFactory) GetDeadlineStatusQueryHandler {
	return GetDeadlineStatusQueryHandler{uowFactory: uowFactory}
}

// Handle fails with a validation error when the order is in a status without
// a deadline: new, rejected or completed.
func (h GetDeadlineStatusQueryHandler) Handle(ctx context.Context, q GetDeadlineStatusQuery) (DeadlineStatus, error) {
	if err := q.Validate(); err != nil {
		return DeadlineStatus{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return DeadlineStatus{}, err
	}
	defer done()

	o, err := uow.OrderRepository().Get(ctx, q.OrderID())
	if err != nil {
		return DeadlineStatus{}, err
	}
	p, err := uow.ProductRepository().Get(ctx, o.ProductID())
	if err != nil {
		return DeadlineStatus{}, err
	}

	status, ok := evaluate(o, p, q.Now())
	if !ok {
		return DeadlineStatus{}, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("order %s is %s, which has no deadline", o.ID(), o.Status()))
	}
	return status, nil
}

func evaluate(o *order.Order, p *product.Product, now time.Time) (DeadlineStatus, bool) {
	e, ok := deadline.Evaluate(o.Status(), o.CreatedAt(), p.HasApostille(), now)
	if !ok {
		return DeadlineStatus{}, false
	}
	return DeadlineStatus{
		OrderID:            o.ID(),
		OrderNumber:        o.Number(),
		Stage:              e.Stage,
		DeadlineAt:         e.DeadlineAt,
		Remaining:          e.Remaining,
		State:              e.State,
		ResponsibleStaffID: o.ResponsibleID(),
	}, true
}

// productCache loads each product once per query.
type productCache struct {
	repo  ports.ProductRepository
	items map[kernel.UUID]*product.Product
}

func (c *productCache) get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if p, ok := c.items[id]; ok {
		return p, nil
	}
	p, err := c.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.items[id] = p
	return p, nil
}
