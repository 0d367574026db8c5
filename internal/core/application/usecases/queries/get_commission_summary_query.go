package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCommissionSummaryQueryIsNotConstructed = errors.New(
	"GetCommissionSummaryQuery must be created via NewGetCommissionSummaryQuery constructor",
)

type GetCommissionSummaryQuery struct {
	staffID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCommissionSummaryQuery(staffID kernel.UUID) (GetCommissionSummaryQuery, error) {
	if err := staffID.Validate(); err != nil {
		return GetCommissionSummaryQuery{}, err
	}
	return GetCommissionSummaryQuery{staffID: staffID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCommissionSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetCommissionSummaryQueryIsNotConstructed)
}

func (q GetCommissionSummaryQuery) StaffID() kernel.UUID { return q.staffID }

// CommissionSummary carries the derived totals; TotalEarned is always
// PaidAmount plus PendingAmount.
type CommissionSummary struct {
	StaffID       kernel.UUID
	Currency      kernel.Currency
	Tiers         []commission.Tier
	Entries       []commission.Entry
	TotalEarned   kernel.Money
	PaidAmount    kernel.Money
	PendingAmount kernel.Money
}

type GetCommissionSummaryQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetCommissionSummaryQueryHandler(uowFactory UoWFactory) GetCommissionSummaryQueryHandler {
	return GetCommissionSummaryQueryHandler{uowFactory: uowFactory}
}

func (h GetCommissionSummaryQueryHandler) Handle(
	ctx context.Context,
	q GetCommissionSummaryQuery,
) (CommissionSummary, error) {
	if err := q.Validate(); err != nil {
		return CommissionSummary{}, err
	}

	uow, done, err := readOnly(ctx, h.uowFactory)
	if err != nil {
		return CommissionSummary{}, err
	}
	defer done()

	plan, err := uow.CommissionRepository().Get(ctx, q.StaffID())
	if err != nil {
		return CommissionSummary{}, err
	}

	return CommissionSummary{
		StaffID:       plan.StaffID(),
		Currency:      plan.Currency(),
		Tiers:         plan.Tiers(),
		Entries:       plan.Entries(),
		TotalEarned:   plan.TotalEarned(),
		PaidAmount:    plan.PaidAmount(),
		PendingAmount: plan.PendingAmount(),
	}, nil
}
