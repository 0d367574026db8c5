package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/guard"
)

var ErrConfigureSalaryCommandIsNotConstructed = errors.New(
	"ConfigureSalaryCommand must be created via NewConfigureSalaryCommand constructor",
)

// ConfigureSalaryCommand sets the salary terms of a staff member. Accrued
// rejection fees and queued deductions are kept.
type ConfigureSalaryCommand struct {
	staffID kernel.UUID
	terms   performance.SalaryTerms

	guard guard.ConstructorGuard
}

func NewConfigureSalaryCommand(staffID kernel.UUID, terms performance.SalaryTerms) (ConfigureSalaryCommand, error) {
	// the salary constructor owns the range and currency checks
	if _, err := performance.NewSalary(staffID, terms); err != nil {
		return ConfigureSalaryCommand{}, err
	}
	return ConfigureSalaryCommand{staffID: staffID, terms: terms, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfigureSalaryCommand) Validate() error {
	return c.guard.Validate(ErrConfigureSalaryCommandIsNotConstructed)
}

func (c ConfigureSalaryCommand) StaffID() kernel.UUID           { return c.staffID }
func (c ConfigureSalaryCommand) Terms() performance.SalaryTerms { return c.terms }
