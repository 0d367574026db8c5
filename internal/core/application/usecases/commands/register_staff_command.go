package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterStaffCommandIsNotConstructed = errors.New(
	"RegisterStaffCommand must be created via NewRegisterStaffCommand constructor",
)

// RegisterStaffCommand adds a member to the staff directory.
type RegisterStaffCommand struct {
	member *staff.Staff

	guard guard.ConstructorGuard
}

func NewRegisterStaffCommand(
	id kernel.UUID,
	name string,
	role staff.Role,
	department string,
	additional ...staff.Role,
) (RegisterStaffCommand, error) {
	member, err := staff.NewStaff(id, name, role, department, additional...)
	if err != nil {
		return RegisterStaffCommand{}, err
	}
	return RegisterStaffCommand{member: member, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterStaffCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStaffCommandIsNotConstructed)
}

func (c RegisterStaffCommand) Staff() *staff.Staff { return c.member }
