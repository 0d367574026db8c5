package memory_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type seeded struct {
	factory *memory.UnitOfWorkFactory
	sales   *staff.Staff
	product *product.Product
	order   *order.Order
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	sales, err := staff.NewStaff(kernel.NewUUID(), "Sara", staff.Sales, "Sales")
	require.NoError(t, err)
	p, err := product.NewProduct(kernel.NewUUID(), "Freezone LLC", product.Services{})
	require.NoError(t, err)
	amount, err := kernel.ParseMoney("2500", "USD")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", p.ID(), amount, []string{"AE"}, created)
	require.NoError(t, err)
	require.NoError(t, o.Submit(created))
	require.NoError(t, o.Assign(order.SalesParty, sales.ID()))
	o.ClearDomainEvents()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.StaffRepository().Add(ctx, sales))
	require.NoError(t, uow.ProductRepository().Add(ctx, p))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	return seeded{factory: factory, sales: sales, product: p, order: o}
}

func getOrder(t *testing.T, factory ports.UnitOfWorkFactory, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := factory.Create().OrderRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return o
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := t.Context()
	s := seed(t)

	stored := getOrder(t, s.factory, s.order.ID())
	assert.Equal(t, s.order.Snapshot(), stored.Snapshot())

	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	o, err := uow.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)
	require.NoError(t, o.Reject(order.Actor{ID: s.sales.ID().String()}, "duplicate", created.Add(time.Minute)))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	assert.Equal(t, 1, o.Version())

	staged, err := uow.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.RejectedBySales, staged.Status())

	require.NoError(t, uow.Rollback(ctx))
	assert.Equal(t, order.PendingSalesReview, getOrder(t, s.factory, s.order.ID()).Status())
	assert.ErrorIs(t, uow.Commit(ctx), memory.ErrNoActiveTransaction)
}

func TestUnitOfWork_ReadsAreCopies(t *testing.T) {
	s := seed(t)

	o := getOrder(t, s.factory, s.order.ID())
	require.NoError(t, o.Reject(order.Actor{ID: s.sales.ID().String()}, "duplicate", created.Add(time.Minute)))

	assert.Equal(t, order.PendingSalesReview, getOrder(t, s.factory, s.order.ID()).Status())
}

func TestUnitOfWork_StaleUpdateConflicts(t *testing.T) {
	ctx := t.Context()
	s := seed(t)
	actor := order.Actor{ID: s.sales.ID().String()}

	first, second := s.factory.Create(), s.factory.Create()
	require.NoError(t, first.Begin(ctx))
	require.NoError(t, second.Begin(ctx))

	a, err := first.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)
	b, err := second.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)

	require.NoError(t, a.Accept(actor, "", product.Services{}, created.Add(time.Minute)))
	require.NoError(t, b.Accept(actor, "", product.Services{}, created.Add(time.Minute)))
	require.NoError(t, first.OrderRepository().Update(ctx, a))
	require.NoError(t, second.OrderRepository().Update(ctx, b))

	require.NoError(t, first.Commit(ctx))
	err = second.Commit(ctx)
	require.ErrorIs(t, err, errs.ErrConflict)

	stored := getOrder(t, s.factory, s.order.ID())
	assert.Equal(t, 1, stored.Version())
	assert.Equal(t, 2, stored.HistoryLen())

	third := s.factory.Create()
	require.NoError(t, third.Begin(ctx))
	stale, err := third.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)
	restored, err := order.RestoreOrder(func() order.Snapshot {
		snap := stale.Snapshot()
		snap.Version = 0
		return snap
	}())
	require.NoError(t, err)
	require.ErrorIs(t, third.OrderRepository().Update(ctx, restored), errs.ErrConflict)
}

func TestUnitOfWork_ConcurrentAccepts(t *testing.T) {
	s := seed(t)
	h := commands.NewAcceptOrderCommandHandler(
		s.factory,
		fixedClock{created.Add(time.Hour)},
		commands.NewOrderEventProcessor(services.NewPerformanceScorer()),
	)
	cmd, err := commands.NewAcceptOrderCommand(s.order.ID(), order.Actor{ID: s.sales.ID().String()}, "")
	require.NoError(t, err)

	const workers = 8
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = h.Handle(t.Context(), cmd)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		// late callers either lost the race or found the stage already moved on
		assert.True(t, errs.IsRetryable(err) || errors.Is(err, errs.ErrPermissionDenied),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	stored := getOrder(t, s.factory, s.order.ID())
	assert.Equal(t, order.PendingOperation, stored.Status())
	assert.Equal(t, 2, stored.HistoryLen())
	assert.Equal(t, 1, stored.Version())
}

func TestOrderRepository_ListActive(t *testing.T) {
	ctx := t.Context()
	s := seed(t)

	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	o, err := uow.OrderRepository().Get(ctx, s.order.ID())
	require.NoError(t, err)
	require.NoError(t, o.Reject(order.Actor{ID: s.sales.ID().String()}, "duplicate", created.Add(time.Minute)))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))

	active, err := uow.OrderRepository().ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
	require.NoError(t, uow.Rollback(ctx))

	active, err = s.factory.Create().OrderRepository().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsEqual(s.order))
}

func TestRepositories_Duplicates(t *testing.T) {
	ctx := t.Context()
	s := seed(t)

	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.OrderRepository().Add(ctx, s.order), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, uow.StaffRepository().Add(ctx, s.sales), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, uow.ProductRepository().Add(ctx, s.product), errs.ErrValueIsInvalid)

	_, err := uow.StaffRepository().Get(ctx, kernel.NewUUID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCommentRepository_ListByOrder(t *testing.T) {
	ctx := t.Context()
	s := seed(t)

	later, err := comment.NewComment(kernel.NewUUID(), s.order.ID(), "u1", "", "second", created.Add(2*time.Hour))
	require.NoError(t, err)
	earlier, err := comment.NewComment(kernel.NewUUID(), s.order.ID(), "u2", "", "first", created.Add(time.Hour))
	require.NoError(t, err)

	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CommentRepository().Add(ctx, later))
	require.NoError(t, uow.Commit(ctx))

	uow = s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CommentRepository().Add(ctx, earlier))

	comments, err := uow.CommentRepository().ListByOrder(ctx, s.order.ID())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body())
	assert.Equal(t, "second", comments[1].Body())

	require.NoError(t, uow.Rollback(ctx))
	comments, err = s.factory.Create().CommentRepository().ListByOrder(ctx, s.order.ID())
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestReportRepository_SaveReplaces(t *testing.T) {
	ctx := t.Context()
	s := seed(t)
	march, err := performance.NewPeriod(2026, time.March)
	require.NoError(t, err)
	zero, err := kernel.ParseMoney("0", "USD")
	require.NoError(t, err)

	report := &performance.MonthlyReport{
		StaffID: s.sales.ID(), Period: march, TotalScore: 80, Status: performance.Good, DeductionAmount: zero,
	}

	uow := s.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MonthlyReportRepository().Save(ctx, report))
	report.TotalScore = 70
	require.NoError(t, uow.MonthlyReportRepository().Save(ctx, report))
	require.NoError(t, uow.Commit(ctx))

	reports, err := s.factory.Create().MonthlyReportRepository().ListByPeriod(ctx, march)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 70, reports[0].TotalScore)

	_, err = s.factory.Create().MonthlyReportRepository().Get(ctx, s.sales.ID(), march.Previous())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
