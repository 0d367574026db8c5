package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkCommissionPaidCommandIsNotConstructed = errors.New(
	"MarkCommissionPaidCommand must be created via NewMarkCommissionPaidCommand constructor",
)

type MarkCommissionPaidCommand struct {
	staffID kernel.UUID
	entryID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkCommissionPaidCommand(staffID, entryID kernel.UUID) (MarkCommissionPaidCommand, error) {
	if err := errors.Join(staffID.Validate(), entryID.Validate()); err != nil {
		return MarkCommissionPaidCommand{}, err
	}
	return MarkCommissionPaidCommand{staffID: staffID, entryID: entryID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkCommissionPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkCommissionPaidCommandIsNotConstructed)
}

func (c MarkCommissionPaidCommand) StaffID() kernel.UUID { return c.staffID }
func (c MarkCommissionPaidCommand) EntryID() kernel.UUID { return c.entryID }
