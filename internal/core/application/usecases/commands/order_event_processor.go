package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// OrderEventProcessor applies the accounting consequences of an order's
// recorded events inside the caller's unit of work:
//   - OrderCompleted: early completion points for operation, commission
//     accrual for sales
//   - OrderRejected: rejection points and fee for the staff whose stage was
//     rejected
//
// Each effect is keyed by the event's history entry id, so processing the same
// event twice changes nothing.
type OrderEventProcessor struct {
	scorer services.PerformanceScorer
}

func NewOrderEventProcessor(scorer services.PerformanceScorer) OrderEventProcessor {
	return OrderEventProcessor{scorer: scorer}
}

// Process handles and then clears the order's pending events.
func (p OrderEventProcessor) Process(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	for _, evt := range o.DomainEvents() {
		var err error
		switch e := evt.(type) {
		case order.OrderCompleted:
			err = p.onCompleted(ctx, uow, e)
		case order.OrderRejected:
			err = p.onRejected(ctx, uow, e)
		}
		if err != nil {
			return fmt.Errorf("process %s for order %s: %w", evt.Name(), evt.OrderID(), err)
		}
	}
	o.ClearDomainEvents()
	return nil
}

func (p OrderEventProcessor) onCompleted(ctx context.Context, uow ports.UnitOfWork, e order.OrderCompleted) error {
	if e.OperationStaffID != nil {
		prod, err := uow.ProductRepository().Get(ctx, e.ProductID)
		if err != nil {
			return err
		}
		rec, err := loadRecord(ctx, uow, *e.OperationStaffID)
		if err != nil {
			return err
		}
		_, applied, err := p.scorer.ScoreCompletion(rec, e, prod.HasApostille())
		if err != nil {
			return err
		}
		if applied {
			if err = uow.PerformanceRepository().Save(ctx, rec); err != nil {
				return err
			}
		}
	}

	if e.SalesStaffID == nil {
		return nil
	}
	repo := uow.CommissionRepository()
	plan, err := repo.Get(ctx, *e.SalesStaffID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		// no commission plan, nothing to accrue
		return nil
	}
	if err != nil {
		return err
	}
	_, created, err := plan.Compute(e.OrderID().String(), plan.NextOrderCount(), e.Amount, e.CompletedAt)
	if err != nil {
		return err
	}
	if !created {
		return nil
	}
	return repo.Update(ctx, plan)
}

func (p OrderEventProcessor) onRejected(ctx context.Context, uow ports.UnitOfWork, e order.OrderRejected) error {
	if e.AttributedStaffID == nil {
		return nil
	}
	rec, err := loadRecord(ctx, uow, *e.AttributedStaffID)
	if err != nil {
		return err
	}
	salary, err := loadSalary(ctx, uow, *e.AttributedStaffID)
	if err != nil {
		return err
	}

	_, applied, err := p.scorer.ScoreRejection(rec, salary, e)
	if err != nil || !applied {
		return err
	}
	if err = uow.PerformanceRepository().Save(ctx, rec); err != nil {
		return err
	}
	if salary == nil {
		return nil
	}
	return uow.SalaryRepository().Update(ctx, salary)
}

// loadRecord returns the staff member's record, or a new empty one.
func loadRecord(ctx context.Context, uow ports.UnitOfWork, staffID kernel.UUID) (*performance.Record, error) {
	rec, err := uow.PerformanceRepository().Get(ctx, staffID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return performance.NewRecord(staffID)
	}
	return rec, err
}

// loadSalary returns nil without error for staff without salary terms.
func loadSalary(ctx context.Context, uow ports.UnitOfWork, staffID kernel.UUID) (*performance.Salary, error) {
	salary, err := uow.SalaryRepository().Get(ctx, staffID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return salary, err
}
