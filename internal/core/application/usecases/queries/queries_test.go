package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/deadline"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 09:00 UTC is a Monday.
var monday = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type world struct {
	factory *memory.UnitOfWorkFactory
	sales   *staff.Staff
	product *product.Product
}

func newWorld(t *testing.T) world {
	t.Helper()
	w := world{factory: memory.NewUnitOfWorkFactory(memory.NewStore())}

	var err error
	w.sales, err = staff.NewStaff(kernel.NewUUID(), "Sara", staff.Sales, "Sales")
	require.NoError(t, err)
	w.product, err = product.NewProduct(kernel.NewUUID(), "Freezone LLC", product.Services{Apostille: true})
	require.NoError(t, err)

	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.StaffRepository().Add(t.Context(), w.sales))
		require.NoError(t, uow.ProductRepository().Add(t.Context(), w.product))
	})
	return w
}

func (w world) write(t *testing.T, fn func(uow ports.UnitOfWork)) {
	t.Helper()
	uow := w.factory.Create()
	require.NoError(t, uow.Begin(t.Context()))
	fn(uow)
	require.NoError(t, uow.Commit(t.Context()))
}

func (w world) addOrder(t *testing.T, number string, createdAt time.Time) *order.Order {
	t.Helper()
	amount, err := kernel.ParseMoney("2500", "USD")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, w.product.ID(), amount, []string{"AE"}, createdAt)
	require.NoError(t, err)
	require.NoError(t, o.Submit(createdAt))
	require.NoError(t, o.Assign(order.SalesParty, w.sales.ID()))
	o.ClearDomainEvents()

	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Add(t.Context(), o))
	})
	return o
}

func TestGetDeadlineStatusQueryHandler_SalesReviewWindow(t *testing.T) {
	w := newWorld(t)
	o := w.addOrder(t, "ORD-1", monday)
	h := queries.NewGetDeadlineStatusQueryHandler(w.factory)

	tests := []struct {
		name  string
		now   time.Time
		state deadline.State
	}{
		{"at creation", monday, deadline.OnTrack},
		{"half an hour left", time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC), deadline.Approaching},
		{"an hour late", time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), deadline.Overdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queries.NewGetDeadlineStatusQuery(o.ID(), tt.now)
			require.NoError(t, err)

			got, err := h.Handle(t.Context(), q)
			require.NoError(t, err)
			assert.Equal(t, order.PendingSalesReview, got.Stage)
			assert.Equal(t, monday.Add(6*time.Hour), got.DeadlineAt)
			assert.Equal(t, tt.state, got.State)
			assert.Equal(t, w.sales.ID().String(), got.ResponsibleStaffID)
		})
	}
}

func TestGetDeadlineStatusQueryHandler_NoDeadline(t *testing.T) {
	w := newWorld(t)
	o := w.addOrder(t, "ORD-1", monday)
	require.NoError(t, o.Reject(order.Actor{ID: w.sales.ID().String()}, "duplicate", monday.Add(time.Minute)))
	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.OrderRepository().Update(t.Context(), o))
	})

	q, err := queries.NewGetDeadlineStatusQuery(o.ID(), monday.Add(time.Hour))
	require.NoError(t, err)
	_, err = queries.NewGetDeadlineStatusQueryHandler(w.factory).Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetDeadlineStatusQueryHandler_NotFound(t *testing.T) {
	w := newWorld(t)
	q, err := queries.NewGetDeadlineStatusQuery(kernel.NewUUID(), monday)
	require.NoError(t, err)
	_, err = queries.NewGetDeadlineStatusQueryHandler(w.factory).Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestListActiveDeadlinesQueryHandler(t *testing.T) {
	w := newWorld(t)
	late := w.addOrder(t, "ORD-1", monday.Add(-24*time.Hour))
	w.addOrder(t, "ORD-2", monday)
	h := queries.NewListActiveDeadlinesQueryHandler(w.factory)

	q, err := queries.NewListActiveDeadlinesQuery(monday.Add(time.Hour))
	require.NoError(t, err)
	all, err := h.Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].OrderID.IsEqual(late.ID()))

	q, err = queries.NewListActiveDeadlinesQuery(monday.Add(time.Hour), deadline.Overdue)
	require.NoError(t, err)
	overdue, err := h.Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "ORD-1", overdue[0].OrderNumber)
}

func TestGetOrderTimelineQueryHandler(t *testing.T) {
	w := newWorld(t)
	o := w.addOrder(t, "ORD-1", monday)

	second, err := comment.NewComment(kernel.NewUUID(), o.ID(), "u1", "Ali", "called again", monday.Add(2*time.Hour))
	require.NoError(t, err)
	first, err := comment.NewComment(kernel.NewUUID(), o.ID(), "u1", "Ali", "called", monday.Add(time.Hour))
	require.NoError(t, err)
	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.CommentRepository().Add(t.Context(), second))
		require.NoError(t, uow.CommentRepository().Add(t.Context(), first))
	})

	q, err := queries.NewGetOrderTimelineQuery(o.ID())
	require.NoError(t, err)
	timeline, err := queries.NewGetOrderTimelineQueryHandler(w.factory).Handle(t.Context(), q)
	require.NoError(t, err)

	assert.Equal(t, "ORD-1", timeline.Order.Number)
	require.Len(t, timeline.History, 1)
	assert.Equal(t, order.New, timeline.History[0].PreviousStatus)
	assert.Equal(t, order.SystemTransition, timeline.History[0].Action)
	require.Len(t, timeline.Comments, 2)
	assert.Equal(t, "called", timeline.Comments[0].Body)
}

func TestGetOrderQueryHandler(t *testing.T) {
	w := newWorld(t)
	o := w.addOrder(t, "ORD-1", monday)

	q, err := queries.NewGetOrderQuery(o.ID())
	require.NoError(t, err)
	view, err := queries.NewGetOrderQueryHandler(w.factory).Handle(t.Context(), q)
	require.NoError(t, err)
	assert.Equal(t, order.PendingSalesReview, view.Status)
	assert.Equal(t, w.sales.ID().String(), view.ResponsibleID)
	assert.Equal(t, 0, view.Version)
}

func TestGetCommissionSummaryQueryHandler(t *testing.T) {
	w := newWorld(t)
	cur, err := kernel.NewCurrency("USD")
	require.NoError(t, err)
	fixed, err := kernel.ParseMoney("10", "USD")
	require.NoError(t, err)
	tier, err := commission.NewTier(1, nil, decimal.NewFromInt(5), fixed)
	require.NoError(t, err)
	plan, err := commission.NewStaffCommission(w.sales.ID(), cur, []commission.Tier{tier})
	require.NoError(t, err)
	amount, err := kernel.ParseMoney("1000", "USD")
	require.NoError(t, err)
	paid, _, err := plan.Compute("INV-1", 1, amount, monday)
	require.NoError(t, err)
	_, _, err = plan.Compute("INV-2", 2, amount, monday)
	require.NoError(t, err)
	_, err = plan.MarkPaid(paid.ID(), monday)
	require.NoError(t, err)
	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.CommissionRepository().Add(t.Context(), plan))
	})

	q, err := queries.NewGetCommissionSummaryQuery(w.sales.ID())
	require.NoError(t, err)
	summary, err := queries.NewGetCommissionSummaryQueryHandler(w.factory).Handle(t.Context(), q)
	require.NoError(t, err)

	assert.Len(t, summary.Entries, 2)
	assert.True(t, summary.TotalEarned.Amount().Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.PaidAmount.Amount().Equal(decimal.NewFromInt(60)))
	assert.True(t, summary.PendingAmount.Amount().Equal(decimal.NewFromInt(60)))
}

func TestGetPerformanceQueryHandler_NoEvents(t *testing.T) {
	w := newWorld(t)

	q, err := queries.NewGetPerformanceQuery(w.sales.ID())
	require.NoError(t, err)
	view, err := queries.NewGetPerformanceQueryHandler(w.factory).Handle(t.Context(), q)
	require.NoError(t, err)
	assert.Equal(t, performance.BaseScore, view.CurrentScore)
	assert.Equal(t, performance.BaseScore, view.DisplayScore)
	assert.Nil(t, view.Salary)
}

func TestListMonthlyReportsQueryHandler(t *testing.T) {
	w := newWorld(t)
	march, err := performance.NewPeriod(2026, time.March)
	require.NoError(t, err)
	zero, err := kernel.ParseMoney("0", "USD")
	require.NoError(t, err)
	w.write(t, func(uow ports.UnitOfWork) {
		require.NoError(t, uow.MonthlyReportRepository().Save(t.Context(), &performance.MonthlyReport{
			StaffID: w.sales.ID(), Period: march, TotalScore: 95, Status: performance.Excellent, DeductionAmount: zero,
		}))
	})
	h := queries.NewListMonthlyReportsQueryHandler(w.factory)

	q, err := queries.NewListMonthlyReportsQuery(march, nil)
	require.NoError(t, err)
	reports, err := h.Handle(t.Context(), q)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, performance.Excellent, reports[0].Status)

	staffID := w.sales.ID()
	q, err = queries.NewListMonthlyReportsQuery(march.Previous(), &staffID)
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
