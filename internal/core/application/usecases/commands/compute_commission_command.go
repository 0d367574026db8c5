package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrComputeCommissionCommandIsNotConstructed = errors.New(
	"ComputeCommissionCommand must be created via NewComputeCommissionCommand constructor",
)

// ComputeCommissionCommand accrues commission for one invoice of a staff member.
type ComputeCommissionCommand struct {
	staffID    kernel.UUID
	invoiceID  string
	orderCount int
	amount     kernel.Money

	guard guard.ConstructorGuard
}

func NewComputeCommissionCommand(
	staffID kernel.UUID,
	invoiceID string,
	orderCount int,
	amount kernel.Money,
) (ComputeCommissionCommand, error) {
	var invoiceErr, countErr error
	if strings.TrimSpace(invoiceID) == "" {
		invoiceErr = commission.ErrInvoiceIDIsRequired
	}
	if orderCount < 1 {
		countErr = errs.NewValueIsOutOfRangeError("cumulativeOrderCount", orderCount, 1, "unbounded")
	}
	if err := errors.Join(staffID.Validate(), invoiceErr, countErr, amount.Validate()); err != nil {
		return ComputeCommissionCommand{}, err
	}

	return ComputeCommissionCommand{
		staffID:    staffID,
		invoiceID:  strings.TrimSpace(invoiceID),
		orderCount: orderCount,
		amount:     amount,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ComputeCommissionCommand) Validate() error {
	return c.guard.Validate(ErrComputeCommissionCommandIsNotConstructed)
}

func (c ComputeCommissionCommand) StaffID() kernel.UUID { return c.staffID }
func (c ComputeCommissionCommand) InvoiceID() string    { return c.invoiceID }
func (c ComputeCommissionCommand) OrderCount() int      { return c.orderCount }
func (c ComputeCommissionCommand) Amount() kernel.Money { return c.amount }
