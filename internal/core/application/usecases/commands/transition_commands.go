package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAcceptOrderCommandIsNotConstructed = errors.New(
		"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
	)
	ErrRejectOrderCommandIsNotConstructed = errors.New(
		"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
	)
	ErrResubmitOrderCommandIsNotConstructed = errors.New(
		"ResubmitOrderCommand must be created via NewResubmitOrderCommand constructor",
	)
)

// AcceptOrderCommand advances an order by one stage on behalf of actor.
type AcceptOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor
	notes   string

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(orderID kernel.UUID, actor order.Actor, notes string) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}
	return AcceptOrderCommand{orderID: orderID, actor: actor, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c AcceptOrderCommand) Actor() order.Actor   { return c.actor }
func (c AcceptOrderCommand) Notes() string        { return c.notes }

// RejectOrderCommand rejects the current stage. The reason is checked by the
// order after authorization, so a blank reason is accepted here.
type RejectOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor
	reason  string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID kernel.UUID, actor order.Actor, reason string) (RejectOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{orderID: orderID, actor: actor, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c RejectOrderCommand) Actor() order.Actor   { return c.actor }
func (c RejectOrderCommand) Reason() string       { return c.reason }

// ResubmitOrderCommand sends a rejected order back to sales review.
type ResubmitOrderCommand struct {
	orderID kernel.UUID
	actor   order.Actor
	notes   string

	guard guard.ConstructorGuard
}

func NewResubmitOrderCommand(orderID kernel.UUID, actor order.Actor, notes string) (ResubmitOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return ResubmitOrderCommand{}, err
	}
	return ResubmitOrderCommand{orderID: orderID, actor: actor, notes: notes, guard: guard.NewConstructorGuard()}, nil
}

func (c ResubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrResubmitOrderCommandIsNotConstructed)
}

func (c ResubmitOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ResubmitOrderCommand) Actor() order.Actor   { return c.actor }
func (c ResubmitOrderCommand) Notes() string        { return c.notes }
