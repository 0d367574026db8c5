package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/deadline"

	"github.com/robfig/cron/v3"
)

// SLAMonitorJob periodically classifies every active order against its stage
// deadline and reports the ones at risk.
type SLAMonitorJob struct {
	handler queries.ListActiveDeadlinesQueryHandler
	clock   commands.Clock
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewSLAMonitorJob(
	handler queries.ListActiveDeadlinesQueryHandler,
	clock commands.Clock,
	spec string,
	logger *slog.Logger,
) *SLAMonitorJob {
	return &SLAMonitorJob{
		handler: handler,
		clock:   clock,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "sla_monitor_job"),
	}
}

// Run logs one line per overdue or approaching order.
func (j *SLAMonitorJob) Run(ctx context.Context) error {
	q, err := queries.NewListActiveDeadlinesQuery(j.clock.Now(), deadline.Overdue, deadline.Approaching)
	if err != nil {
		return err
	}
	statuses, err := j.handler.Handle(ctx, q)
	if err != nil {
		return err
	}

	for _, s := range statuses {
		level := slog.LevelInfo
		if s.State == deadline.Overdue {
			level = slog.LevelWarn
		}
		j.logger.Log(ctx, level, "Order deadline at risk",
			"order_id", s.OrderID.String(),
			"order_number", s.OrderNumber,
			"stage", s.Stage.String(),
			"state", s.State.String(),
			"deadline_at", s.DeadlineAt,
			"responsible_staff_id", s.ResponsibleStaffID,
		)
	}
	return nil
}

func (j *SLAMonitorJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "SLA monitor job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "SLA monitor job started", "schedule", j.spec)
	return nil
}

func (j *SLAMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "SLA monitor job stopped")
}
