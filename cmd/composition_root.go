package cmd

import (
	"context"
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

type CompositionRoot struct {
	cfg        Config
	uowFactory ports.UnitOfWorkFactory
	clock      commands.Clock
	logger     *slog.Logger
	scorer     services.PerformanceScorer
}

func NewCompositionRoot(cfg Config, uowFactory ports.UnitOfWorkFactory, clock commands.Clock, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger,
		scorer:     services.NewPerformanceScorer(),
	}
}

func (c *CompositionRoot) CreateOrderEventProcessor() commands.OrderEventProcessor {
	return commands.NewOrderEventProcessor(c.scorer)
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	processor := c.CreateOrderEventProcessor()
	return httpin.Handlers{
		CreateOrder:            commands.NewCreateOrderCommandHandler(c.uowFactory, c.clock),
		AssignOrderStaff:       commands.NewAssignOrderStaffCommandHandler(c.uowFactory),
		AcceptOrder:            commands.NewAcceptOrderCommandHandler(c.uowFactory, c.clock, processor),
		RejectOrder:            commands.NewRejectOrderCommandHandler(c.uowFactory, c.clock, processor),
		ResubmitOrder:          commands.NewResubmitOrderCommandHandler(c.uowFactory, c.clock, processor),
		AddComment:             commands.NewAddCommentCommandHandler(c.uowFactory, c.clock),
		RegisterProduct:        commands.NewRegisterProductCommandHandler(c.uowFactory),
		RegisterStaff:          commands.NewRegisterStaffCommandHandler(c.uowFactory),
		ConfigureCommission:    commands.NewConfigureCommissionCommandHandler(c.uowFactory),
		ComputeCommission:      commands.NewComputeCommissionCommandHandler(c.uowFactory, c.clock),
		MarkCommissionPaid:     commands.NewMarkCommissionPaidCommandHandler(c.uowFactory, c.clock),
		ConfigureSalary:        commands.NewConfigureSalaryCommandHandler(c.uowFactory),
		RecordPerformanceEvent: commands.NewRecordPerformanceEventCommandHandler(c.uowFactory, c.clock, c.scorer),
		GenerateMonthlyReport:  c.CreateGenerateMonthlyReportCommandHandler(),

		GetOrder:             queries.NewGetOrderQueryHandler(c.uowFactory),
		GetOrderTimeline:     queries.NewGetOrderTimelineQueryHandler(c.uowFactory),
		GetDeadlineStatus:    queries.NewGetDeadlineStatusQueryHandler(c.uowFactory),
		ListActiveDeadlines:  queries.NewListActiveDeadlinesQueryHandler(c.uowFactory),
		GetCommissionSummary: queries.NewGetCommissionSummaryQueryHandler(c.uowFactory),
		GetPerformance:       queries.NewGetPerformanceQueryHandler(c.uowFactory),
		ListMonthlyReports:   queries.NewListMonthlyReportsQueryHandler(c.uowFactory),
	}
}

func (c *CompositionRoot) CreateGenerateMonthlyReportCommandHandler() commands.GenerateMonthlyReportCommandHandler {
	return commands.NewGenerateMonthlyReportCommandHandler(c.uowFactory, c.clock, c.scorer)
}

func (c *CompositionRoot) CreateServer(ctx context.Context) (*httpin.Server, error) {
	return httpin.NewServer(ctx, c.CreateHandlers(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewSLAMonitorJob(
			queries.NewListActiveDeadlinesQueryHandler(c.uowFactory),
			c.clock,
			c.cfg.SLAMonitorSchedule,
			c.logger,
		),
		jobs.NewMonthlyPerformanceJob(
			c.CreateGenerateMonthlyReportCommandHandler(),
			c.uowFactory,
			c.clock,
			c.cfg.MonthlyReportSchedule,
			c.logger,
		),
	)
}
