// Package queries contains the read side. Handlers open a unit of work only to
// read through the same repositories the commands use, and always roll it back.
package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// UoWFactory creates the unit of work a query reads through.
type UoWFactory interface {
	Create() ports.UnitOfWork
}

// readOnly begins a unit of work and returns the function that ends it.
func readOnly(ctx context.Context, factory UoWFactory) (ports.UnitOfWork, func(), error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	return uow, func() { _ = uow.Rollback(ctx) }, nil
}
