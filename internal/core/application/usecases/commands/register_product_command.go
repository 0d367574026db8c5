package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterProductCommandIsNotConstructed = errors.New(
	"RegisterProductCommand must be created via NewRegisterProductCommand constructor",
)

// RegisterProductCommand adds a product and the services it includes.
type RegisterProductCommand struct {
	product *product.Product

	guard guard.ConstructorGuard
}

func NewRegisterProductCommand(id kernel.UUID, name string, services product.Services) (RegisterProductCommand, error) {
	p, err := product.NewProduct(id, name, services)
	if err != nil {
		return RegisterProductCommand{}, err
	}
	return RegisterProductCommand{product: p, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterProductCommand) Validate() error {
	return c.guard.Validate(ErrRegisterProductCommandIsNotConstructed)
}

func (c RegisterProductCommand) Product() *product.Product { return c.product }
