package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/guard"
)

var ErrListMonthlyReportsQueryIsNotConstructed = errors.New(
	"ListMonthlyReportsQuery must be created via NewListMonthlyReportsQuery constructor",
)

// ListMonthlyReportsQuery returns the reports of one period, optionally for a
// single staff member.
type ListMonthlyReportsQuery struct {
	period  performance.Period
	staffID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListMonthlyReportsQuery(period performance.Period, staffID *kernel.UUID) (ListMonthlyReportsQuery, error) {
	if _, err := performance.NewPeriod(period.Year, period.Month); err != nil {
		return ListMonthlyReportsQuery{}, err
	}
	q := ListMonthlyReportsQuery{period: period, guard: guard.NewConstructorGuard()}
	if staffID != nil {
		if err := staffID.Validate(); err != nil {
			return ListMonthlyReportsQuery{}, err
		}
		id := *staffID
		q.staffID = &id
	}
	return q, nil
}

func (q ListMonthlyReportsQuery) Validate() error {
	return q.guard.Validate(ErrListMonthlyReportsQueryIsNotConstructed)
}

func (q ListMonthlyReportsQuery) Period() performance.Period { return q.period }
func (q ListMonthlyReportsQuery) StaffID() *kernel.UUID      { return q.staffID }

type ListMonthlyReportsQueryHandler struct {
	uowFactory UoWFactory
}

func NewListMonthlyReportsQueryHandler(uowFactory UoWFactory) ListMonthlyReportsQueryHandler {
	return ListMonthlyReportsQueryHandler{uowFactory: uowFactory}
}

func (h ListMonthlyReportsQueryHandler) Handle(
	ctx context.Context,
	q ListMonthlyReportsQuery,
) ([]*performance.MonthlyReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return nil, err
	}
	defer done()

	repo := uow.MonthlyReportRepository()
	if q.StaffID() == nil {
		return repo.ListByPeriod(ctx, q.Period())
	}

	report, err := repo.Get(ctx, *q.StaffID(), q.Period())
	if err != nil {
		return nil, err
	}
	return []*performance.MonthlyReport{report}, nil
}
