package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPerformanceQueryIsNotConstructed = errors.New(
	"GetPerformanceQuery must be created via NewGetPerformanceQuery constructor",
)

type GetPerformanceQuery struct {
	staffID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPerformanceQuery(staffID kernel.UUID) (GetPerformanceQuery, error) {
	if err := staffID.Validate(); err != nil {
		return GetPerformanceQuery{}, err
	}
	return GetPerformanceQuery{staffID: staffID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrGetPerformanceQueryIsNotConstructed)
}

func (q GetPerformanceQuery) StaffID() kernel.UUID { return q.staffID }

// PerformanceView reports the running score. CurrentScore is not clamped;
// DisplayScore is. Salary is nil for staff without salary terms.
type PerformanceView struct {
	StaffID          kernel.UUID
	CurrentScore     int
	DisplayScore     int
	TotalScore       int
	Rejections       int
	EarlyCompletions int
	Deltas           []performance.Delta
	Salary           *SalaryView
}

type SalaryView struct {
	Terms              performance.SalaryTerms
	TotalRejectionFees kernel.Money
	PendingDeductions  []performance.Deduction
	NextPayment        kernel.Money
}

type GetPerformanceQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetPerformanceQueryHandler(uowFactory UoWFactory) GetPerformanceQueryHandler {
	return GetPerformanceQueryHandler{uowFactory: uowFactory}
}

// Handle returns a base score view for staff without recorded events.
func (h GetPerformanceQueryHandler) Handle(ctx context.Context, q GetPerformanceQuery) (PerformanceView, error) {
	if err := q.Validate(); err != nil {
		return PerformanceView{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return PerformanceView{}, err
	}
	defer done()

	if _, err = uow.StaffRepository().Get(ctx, q.StaffID()); err != nil {
		return PerformanceView{}, err
	}

	rec, err := uow.PerformanceRepository().Get(ctx, q.StaffID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		rec, err = performance.NewRecord(q.StaffID())
	}
	if err != nil {
		return PerformanceView{}, err
	}

	view := PerformanceView{
		StaffID:          rec.StaffID(),
		CurrentScore:     rec.CurrentScore(),
		DisplayScore:     performance.Clamp(rec.CurrentScore()),
		TotalScore:       rec.TotalScore(),
		Rejections:       rec.Rejections(),
		EarlyCompletions: rec.EarlyCompletions(),
		Deltas:           rec.Deltas(),
	}

	salary, err := uow.SalaryRepository().Get(ctx, q.StaffID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return PerformanceView{}, err
	default:
		view.Salary = &SalaryView{
			Terms:              salary.Terms(),
			TotalRejectionFees: salary.TotalRejectionFees(),
			PendingDeductions:  salary.PendingDeductions(),
			NextPayment:        salary.NextPayment(),
		}
	}
	return view, nil
}
