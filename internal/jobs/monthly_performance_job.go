package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// MonthlyPerformanceJob generates the previous month's report for every staff
// member with salary terms. Regenerating a month replaces the stored report, so
// a rerun after a partial failure is safe.
type MonthlyPerformanceJob struct {
	handler    commands.GenerateMonthlyReportCommandHandler
	uowFactory ports.UnitOfWorkFactory
	clock      commands.Clock
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

func NewMonthlyPerformanceJob(
	handler commands.GenerateMonthlyReportCommandHandler,
	uowFactory ports.UnitOfWorkFactory,
	clock commands.Clock,
	spec string,
	logger *slog.Logger,
) *MonthlyPerformanceJob {
	return &MonthlyPerformanceJob{
		handler:    handler,
		uowFactory: uowFactory,
		clock:      clock,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "monthly_performance_job"),
	}
}

// Run reports the previous month. A failure for one staff member does not
// stop the others; all failures are returned together.
func (j *MonthlyPerformanceJob) Run(ctx context.Context) error {
	period := performance.PeriodOf(j.clock.Now()).Previous()

	salaries, err := j.salaried(ctx)
	if err != nil {
		return err
	}

	var failures []error
	for _, s := range salaries {
		cmd, err := commands.NewGenerateMonthlyReportCommand(s.StaffID(), period)
		if err == nil {
			_, err = j.handler.Handle(ctx, cmd)
		}
		if err != nil {
			failures = append(failures, fmt.Errorf("staff %s: %w", s.StaffID(), err))
		}
	}

	j.logger.InfoContext(ctx, "Monthly performance reports generated",
		"period", period.String(),
		"staff", len(salaries),
		"failed", len(failures),
	)
	return errors.Join(failures...)
}

func (j *MonthlyPerformanceJob) salaried(ctx context.Context) ([]*performance.Salary, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	return uow.SalaryRepository().List(ctx)
}

func (j *MonthlyPerformanceJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Monthly performance job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Monthly performance job started", "schedule", j.spec)
	return nil
}

func (j *MonthlyPerformanceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Monthly performance job stopped")
}
