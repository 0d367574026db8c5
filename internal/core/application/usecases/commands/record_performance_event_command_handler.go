package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/services"
)

type RecordPerformanceEventCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	scorer     services.PerformanceScorer
}

func NewRecordPerformanceEventCommandHandler(
	uowFactory UoWFactory,
	clock Clock,
	scorer services.PerformanceScorer,
) RecordPerformanceEventCommandHandler {
	return RecordPerformanceEventCommandHandler{uowFactory: uowFactory, clock: clock, scorer: scorer}
}

// Handle returns the staff member's record after the event. A key seen before
// leaves the record unchanged.
func (h RecordPerformanceEventCommandHandler) Handle(
	ctx context.Context,
	cmd RecordPerformanceEventCommand,
) (*performance.Record, error) {
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

	if _, err := uow.StaffRepository().Get(ctx, cmd.StaffID()); err != nil {
		return nil, err
	}

	rec, err := loadRecord(ctx, uow, cmd.StaffID())
	if err != nil {
		return nil, err
	}
	salary, err := loadSalary(ctx, uow, cmd.StaffID())
	if err != nil {
		return nil, err
	}

	_, applied, err := h.scorer.Record(rec, salary, cmd.Key(), cmd.EventType(), cmd.OrderID(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if !applied {
		return rec, nil
	}

	if err = uow.PerformanceRepository().Save(ctx, rec); err != nil {
		return nil, err
	}
	if salary != nil && cmd.EventType() == performance.Rejection {
		if err = uow.SalaryRepository().Update(ctx, salary); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return rec, nil
}
