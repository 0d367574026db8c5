package queries

import (
	"context"
	"errors"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListActiveDeadlinesQueryIsNotConstructed = errors.New(
	"ListActiveDeadlinesQuery must be created via NewListActiveDeadlinesQuery constructor",
)

// ListActiveDeadlinesQuery evaluates every order with a running deadline.
// States filters the result; no states means all of them.
type ListActiveDeadlinesQuery struct {
	now    time.Time
	states []deadline.State

	guard guard.ConstructorGuard
}

func NewListActiveDeadlinesQuery(now time.Time, states ...deadline.State) (ListActiveDeadlinesQuery, error) {
	if now.IsZero() {
		return ListActiveDeadlinesQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListActiveDeadlinesQuery{
		now:    now.UTC(),
		states: slices.Clone(states),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListActiveDeadlinesQuery) Validate() error {
	return q.guard.Validate(ErrListActiveDeadlinesQueryIsNotConstructed)
}

func (q ListActiveDeadlinesQuery) Now() time.Time { return q.now }

func (q ListActiveDeadlinesQuery) includes(s deadline.State) bool {
	return len(q.states) == 0 || slices.Contains(q.states, s)
}

type ListActiveDeadlinesQueryHandler struct {
	uowFactory UoWFactory
}

func NewListActiveDeadlinesQueryHandler(uowFactory UoWFactory) ListActiveDeadlinesQueryHandler {
	return ListActiveDeadlinesQueryHandler{uowFactory: uowFactory}
}

// Handle returns the statuses ordered by deadline, most urgent first.
func (h ListActiveDeadlinesQueryHandler) Handle(ctx context.Context, q ListActiveDeadlinesQuery) ([]DeadlineStatus, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	orders, err := uow.OrderRepository().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	products := productCache{repo: uow.ProductRepository(), items: make(map[kernel.UUID]*product.Product)}
	statuses := make([]DeadlineStatus, 0, len(orders))
	for _, o := range orders {
		p, err := products.get(ctx, o.ProductID())
		if err != nil {
			return nil, err
		}
		status, ok := evaluate(o, p, q.Now())
		if !ok || !q.includes(status.State) {
			continue
		}
		statuses = append(statuses, status)
	}

	slices.SortStableFunc(statuses, func(a, b DeadlineStatus) int {
		return a.DeadlineAt.Compare(b.DeadlineAt)
	})
	return statuses, nil
}
