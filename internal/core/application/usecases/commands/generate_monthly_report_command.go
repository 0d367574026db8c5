package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateMonthlyReportCommandIsNotConstructed = errors.New(
	"GenerateMonthlyReportCommand must be created via NewGenerateMonthlyReportCommand constructor",
)

// GenerateMonthlyReportCommand scores one staff member for one calendar month.
type GenerateMonthlyReportCommand struct {
	staffID kernel.UUID
	period  performance.Period

	guard guard.ConstructorGuard
}

func NewGenerateMonthlyReportCommand(staffID kernel.UUID, period performance.Period) (GenerateMonthlyReportCommand, error) {
	if err := staffID.Validate(); err != nil {
		return GenerateMonthlyReportCommand{}, err
	}
	if _, err := performance.NewPeriod(period.Year, period.Month); err != nil {
		return GenerateMonthlyReportCommand{}, err
	}
	return GenerateMonthlyReportCommand{staffID: staffID, period: period, guard: guard.NewConstructorGuard()}, nil
}

func (c GenerateMonthlyReportCommand) Validate() error {
	return c.guard.Validate(ErrGenerateMonthlyReportCommandIsNotConstructed)
}

func (c GenerateMonthlyReportCommand) StaffID() kernel.UUID       { return c.staffID }
func (c GenerateMonthlyReportCommand) Period() performance.Period { return c.period }
