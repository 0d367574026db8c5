package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/errs"
)

// PerformanceScorer reacts to order events. It never touches the order itself;
// every score change is keyed by the triggering history entry id so a replayed
// event has no effect.
type PerformanceScorer struct{}

func NewPerformanceScorer() PerformanceScorer {
	return PerformanceScorer{}
}

// IsEarly reports whether a completion beat the shipping preparation deadline.
func (PerformanceScorer) IsEarly(evt order.OrderCompleted, hasApostille bool) bool {
	due, _ := deadline.ForStage(order.ShippingPreparation, evt.CreatedAt, hasApostille)
	return evt.CompletedAt.Before(due)
}

// ScoreCompletion credits the completing operation staff for an early completion.
// rec must belong to evt.OperationStaffID.
func (s PerformanceScorer) ScoreCompletion(
	rec *performance.Record,
	evt order.OrderCompleted,
	hasApostille bool,
) (performance.Delta, bool, error) {
	if err := s.checkOwner(rec, evt.OperationStaffID); err != nil {
		return performance.Delta{}, false, err
	}
	if !s.IsEarly(evt, hasApostille) {
		return performance.Delta{}, false, nil
	}
	orderID := evt.OrderID()
	return rec.Apply(evt.EntryID().String(), performance.EarlyCompletion, &orderID, evt.CompletedAt)
}

// ScoreRejection debits the staff whose stage was rejected and accrues their
// rejection fee. rec and salary must belong to evt.AttributedStaffID; salary
// may be nil for staff without salary terms.
func (s PerformanceScorer) ScoreRejection(
	rec *performance.Record,
	salary *performance.Salary,
	evt order.OrderRejected,
) (performance.Delta, bool, error) {
	if err := s.checkOwner(rec, evt.AttributedStaffID); err != nil {
		return performance.Delta{}, false, err
	}
	orderID := evt.OrderID()
	return s.Record(rec, salary, evt.EntryID().String(), performance.Rejection, &orderID, evt.OccurredAt())
}

// Record applies a performance event under key. Rejections also accrue the
// salary's rejection fee, once per key, when salary is not nil.
func (PerformanceScorer) Record(
	rec *performance.Record,
	salary *performance.Salary,
	key string,
	eventType performance.EventType,
	orderID *kernel.UUID,
	at time.Time,
) (performance.Delta, bool, error) {
	if err := rec.Validate(); err != nil {
		return performance.Delta{}, false, err
	}
	accrueFee := eventType == performance.Rejection && salary != nil
	if accrueFee && !salary.StaffID().IsEqual(rec.StaffID()) {
		return performance.Delta{}, false, errs.NewValueIsInvalidError("salary")
	}

	delta, applied, err := rec.Apply(key, eventType, orderID, at)
	if err != nil || !applied {
		return delta, applied, err
	}
	if accrueFee {
		if err = salary.AccrueRejectionFee(); err != nil {
			return performance.Delta{}, false, err
		}
	}
	return delta, true, nil
}

// MonthlyReport scores period p and queues the underperformance deduction on
// salary when the score is below the staff threshold.
func (PerformanceScorer) MonthlyReport(
	rec *performance.Record,
	salary *performance.Salary,
	p performance.Period,
	at time.Time,
) (*performance.MonthlyReport, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := salary.Validate(); err != nil {
		return nil, err
	}
	if !salary.StaffID().IsEqual(rec.StaffID()) {
		return nil, errs.NewValueIsInvalidError("salary")
	}

	score := rec.PeriodScore(p)
	rejections, early := rec.PeriodCounts(p)
	zero, err := kernel.ZeroMoney(salary.Terms().Base.Currency())
	if err != nil {
		return nil, err
	}

	report := &performance.MonthlyReport{
		StaffID:          rec.StaffID(),
		Period:           p,
		TotalScore:       score,
		ScoreTrend:       score - rec.PeriodScore(p.Previous()),
		Status:           performance.StatusFor(score),
		Rejections:       rejections,
		EarlyCompletions: early,
		DeductionAmount:  zero,
		GeneratedAt:      at.UTC(),
	}
	if salary.IsUnderperforming(score) {
		d, _ := salary.QueueDeduction(p)
		report.SalaryImpact = true
		report.DeductionAmount = d.Amount
	}
	return report, nil
}

func (PerformanceScorer) checkOwner(rec *performance.Record, staffID *kernel.UUID) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if staffID == nil {
		return errs.NewValueIsRequiredError("attributed staff")
	}
	if !rec.StaffID().IsEqual(*staffID) {
		return errs.NewValueIsInvalidErrorWithCause("performance record",
			fmt.Errorf("record belongs to %s, event to %s", rec.StaffID(), staffID))
	}
	return nil
}
