package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists orders with optimistic concurrency. Update succeeds
// only if the stored version still equals aggregate.Version(); otherwise it
// returns *errs.ConflictError and writes nothing.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListActive returns orders in a stage with a running deadline.
	ListActive(ctx context.Context) ([]*order.Order, error)
}
