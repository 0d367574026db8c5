package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignOrderStaffCommandIsNotConstructed = errors.New(
	"AssignOrderStaffCommand must be created via NewAssignOrderStaffCommand constructor",
)

// AssignOrderStaffCommand puts a staff member on the sales, operation or
// manager stages of an order.
type AssignOrderStaffCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	party   order.Party
	staffID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderStaffCommand(orderID kernel.UUID, party order.Party, staffID kernel.UUID) (AssignOrderStaffCommand, error) {
	var partyErr error
	switch party {
	case order.SalesParty, order.OperationParty, order.ManagerParty:
	default:
		partyErr = errs.NewValueIsInvalidErrorWithCause("party", fmt.Errorf("%s cannot be assigned", party))
	}

	if err := errors.Join(orderID.Validate(), staffID.Validate(), partyErr); err != nil {
		return AssignOrderStaffCommand{}, err
	}

	return AssignOrderStaffCommand{
		orderID: orderID,
		party:   party,
		staffID: staffID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderStaffCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderStaffCommandIsNotConstructed)
}

func (c AssignOrderStaffCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignOrderStaffCommand) Party() order.Party   { return c.party }
func (c AssignOrderStaffCommand) StaffID() kernel.UUID { return c.staffID }
