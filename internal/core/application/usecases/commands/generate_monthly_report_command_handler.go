package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/services"
)

type GenerateMonthlyReportCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	scorer     services.PerformanceScorer
}

func NewGenerateMonthlyReportCommandHandler(
	uowFactory UoWFactory,
	clock Clock,
	scorer services.PerformanceScorer,
) GenerateMonthlyReportCommandHandler {
	return GenerateMonthlyReportCommandHandler{uowFactory: uowFactory, clock: clock, scorer: scorer}
}

// Handle stores the report, replacing an earlier one for the same month, and
// queues the underperformance deduction on the salary. Regenerating a month
// never queues a second deduction.
func (h GenerateMonthlyReportCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateMonthlyReportCommand,
) (*performance.MonthlyReport, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	salary, err := uow.SalaryRepository().Get(ctx, cmd.StaffID())
	if err != nil {
		return nil, err
	}
	rec, err := loadRecord(ctx, uow, cmd.StaffID())
	if err != nil {
		return nil, err
	}

	report, err := h.scorer.MonthlyReport(rec, salary, cmd.Period(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.MonthlyReportRepository().Save(ctx, report); err != nil {
		return nil, err
	}
	if report.SalaryImpact {
		if err = uow.SalaryRepository().Update(ctx, salary); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return report, nil
}
