package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func processor() commands.OrderEventProcessor {
	return commands.NewOrderEventProcessor(services.NewPerformanceScorer())
}

func salesPlan(t *testing.T, staffID kernel.UUID) *commission.StaffCommission {
	t.Helper()
	cur, err := kernel.NewCurrency("USD")
	require.NoError(t, err)
	tier, err := commission.NewTier(1, nil, decimal.NewFromInt(5), usd(t, "0"))
	require.NoError(t, err)
	plan, err := commission.NewStaffCommission(staffID, cur, []commission.Tier{tier})
	require.NoError(t, err)
	return plan
}

func salaryOf(t *testing.T, staffID kernel.UUID) *performance.Salary {
	t.Helper()
	s, err := performance.NewSalary(staffID, performance.SalaryTerms{
		Base:                      usd(t, "3000"),
		UnderperformanceDeduction: usd(t, "200"),
		UnderperformanceThreshold: 60,
		RejectionFee:              usd(t, "25"),
		NextPaymentDate:           time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return s
}

func TestAcceptOrderCommandHandler_Handle_StageAdvanced(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)

	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	f.uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), actorOf(c.sales), "documents checked")
	require.NoError(t, err)

	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PendingOperation, got.Status())
	assert.Empty(t, got.DomainEvents())
	f.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_CompletionAccruesAndScores(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{Apostille: true, Shipping: true})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.ShippingPreparation)

	plan := salesPlan(t, c.sales.ID())
	var saved *performance.Record

	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Twice()
	f.uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	f.uow.performance.On("Get", mock.Anything, c.operation.ID()).
		Return(nil, errs.NewObjectNotFoundError("staffID", c.operation.ID())).Once()
	f.uow.performance.On("Save", mock.Anything, mock.AnythingOfType("*performance.Record")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*performance.Record) }).
		Return(nil).Once()
	f.uow.commissions.On("Get", mock.Anything, c.sales.ID()).Return(plan, nil).Once()
	f.uow.commissions.On("Update", mock.Anything, plan).Return(nil).Once()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), actorOf(c.operation), "handed over")
	require.NoError(t, err)

	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created.Add(2 * time.Hour)}, processor())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.Completed, got.Status())
	assert.True(t, got.CompletedServices().Apostille)
	require.NotNil(t, saved)
	assert.Equal(t, performance.BaseScore+performance.EarlyCompletionPoints, saved.CurrentScore())

	entry, ok := plan.FindByInvoice(o.ID().String())
	require.True(t, ok)
	assert.Equal(t, 1, entry.OrderCount())
	assert.True(t, entry.Commission().Amount().Equal(decimal.NewFromInt(125)))
	f.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_NoCommissionPlan(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.ShippingPreparation)

	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Twice()
	f.uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	f.uow.performance.On("Get", mock.Anything, c.operation.ID()).
		Return(nil, errs.NewObjectNotFoundError("staffID", c.operation.ID())).Once()
	f.uow.commissions.On("Get", mock.Anything, c.sales.ID()).
		Return(nil, errs.NewObjectNotFoundError("staffID", c.sales.ID())).Once()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), actorOf(c.operation), "")
	require.NoError(t, err)

	// four weeks later the completion is late, so no points are saved
	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created.AddDate(0, 0, 28)}, processor())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Completed, got.Status())
	f.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_PermissionDenied(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.PendingOperationManagerReview)
	historyLen := o.HistoryLen()

	f := newFixture()
	f.expectTx(false)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), actorOf(c.sales), "")
	require.NoError(t, err)

	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, order.PendingOperationManagerReview, o.Status())
	assert.Equal(t, historyLen, o.HistoryLen())
	f.uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)

	f := newFixture()
	f.expectTx(false)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.products.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	f.uow.orders.On("Update", mock.Anything, o).
		Return(errs.NewConflictError("order", o.ID().String(), o.Version())).Once()

	cmd, err := commands.NewAcceptOrderCommand(o.ID(), actorOf(c.sales), "")
	require.NoError(t, err)

	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, errs.IsRetryable(err))
	f.assertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	h := commands.NewAcceptOrderCommandHandler(new(MockUoWFactory), fixedClock{created}, processor())
	_, err := h.Handle(t.Context(), commands.AcceptOrderCommand{})
	require.ErrorIs(t, err, commands.ErrAcceptOrderCommandIsNotConstructed)
}

func TestAcceptOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	f.uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	cmd, err := commands.NewAcceptOrderCommand(kernel.NewUUID(), order.Actor{ID: order.ClientActorID}, "")
	require.NoError(t, err)

	h := commands.NewAcceptOrderCommandHandler(f.factory, fixedClock{created}, processor())
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	f.assertExpectations(t)
}

func TestRejectOrderCommandHandler_Handle_ReworkChargesOperation(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.PendingOperationManagerReview)
	salary := salaryOf(t, c.operation.ID())

	var saved *performance.Record
	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
	f.uow.performance.On("Get", mock.Anything, c.operation.ID()).
		Return(nil, errs.NewObjectNotFoundError("staffID", c.operation.ID())).Once()
	f.uow.salaries.On("Get", mock.Anything, c.operation.ID()).Return(salary, nil).Once()
	f.uow.performance.On("Save", mock.Anything, mock.AnythingOfType("*performance.Record")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*performance.Record) }).
		Return(nil).Once()
	f.uow.salaries.On("Update", mock.Anything, salary).Return(nil).Once()

	cmd, err := commands.NewRejectOrderCommand(o.ID(), actorOf(c.manager), "passport copy is unreadable")
	require.NoError(t, err)

	h := commands.NewRejectOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.PendingOperation, got.Status())
	assert.Equal(t, []string{"passport copy is unreadable"}, got.RejectionReasons())
	require.NotNil(t, saved)
	assert.Equal(t, performance.BaseScore+performance.RejectionPoints, saved.CurrentScore())
	assert.True(t, salary.TotalRejectionFees().Amount().Equal(decimal.NewFromInt(25)))
	f.assertExpectations(t)
}

func TestRejectOrderCommandHandler_Handle_BlankReason(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.PendingOperation)

	f := newFixture()
	f.expectTx(false)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewRejectOrderCommand(o.ID(), actorOf(c.operation), "   ")
	require.NoError(t, err)

	h := commands.NewRejectOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrReasonIsRequired)
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, order.PendingOperation, o.Status())
	f.assertExpectations(t)
}

func TestRejectOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	walk(t, o, c, order.ShippingPreparation)

	f := newFixture()
	f.expectTx(false)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewRejectOrderCommand(o.ID(), actorOf(c.operation), "late")
	require.NoError(t, err)

	h := commands.NewRejectOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	f.assertExpectations(t)
}

func TestResubmitOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	require.NoError(t, o.Reject(actorOf(c.sales), "missing passport", created.Add(time.Minute)))
	o.ClearDomainEvents()
	require.Equal(t, order.RejectedBySales, o.Status())

	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	cmd, err := commands.NewResubmitOrderCommand(o.ID(), actorOf(c.sales), "passport attached")
	require.NoError(t, err)

	h := commands.NewResubmitOrderCommandHandler(f.factory, fixedClock{created.Add(time.Hour)}, processor())
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PendingSalesReview, got.Status())
	f.assertExpectations(t)
}

func TestNewTransitionCommands_Validation(t *testing.T) {
	_, err := commands.NewAcceptOrderCommand(kernel.UUID{}, order.Actor{ID: "x"}, "")
	require.Error(t, err)
	_, err = commands.NewRejectOrderCommand(kernel.NewUUID(), order.Actor{}, "reason")
	require.ErrorIs(t, err, order.ErrActorIsRequired)
	_, err = commands.NewResubmitOrderCommand(kernel.NewUUID(), order.Actor{}, "")
	require.Error(t, err)

	// the reason is checked by the order after authorization
	_, err = commands.NewRejectOrderCommand(kernel.NewUUID(), order.Actor{ID: "x"}, "")
	require.NoError(t, err)
}
