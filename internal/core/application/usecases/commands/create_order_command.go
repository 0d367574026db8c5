package commands

import (
	"errors"
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errs.NewValueIsRequiredError("order number")
)

// CreateOrderCommand registers an order coming from intake. The order is
// handed to sales review straight away; salesID optionally assigns the sales
// owner at the same time.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	number    string
	productID kernel.UUID
	amount    kernel.Money
	countries []string
	salesID   *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	number string,
	productID kernel.UUID,
	amount kernel.Money,
	countries []string,
	salesID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		countries: slices.Clone(countries),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNumber(number),
		cmd.setProductID(productID),
		cmd.setAmount(amount),
		cmd.setSalesID(salesID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateOrderCommand) Number() string         { return c.number }
func (c CreateOrderCommand) ProductID() kernel.UUID { return c.productID }
func (c CreateOrderCommand) Amount() kernel.Money   { return c.amount }
func (c CreateOrderCommand) Countries() []string    { return slices.Clone(c.countries) }
func (c CreateOrderCommand) SalesID() *kernel.UUID  { return c.salesID }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return ErrOrderNumberIsRequired
	}
	c.number = strings.TrimSpace(number)
	return nil
}

func (c *CreateOrderCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *CreateOrderCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}

func (c *CreateOrderCommand) setSalesID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	v := *id
	c.salesID = &v
	return nil
}
