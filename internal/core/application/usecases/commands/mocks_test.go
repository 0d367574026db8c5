package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

type MockStaffRepository struct{ mock.Mock }

func (m *MockStaffRepository) Add(ctx context.Context, s *staff.Staff) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*staff.Staff)
	return s, args.Error(1)
}

type MockCommissionRepository struct{ mock.Mock }

func (m *MockCommissionRepository) Add(ctx context.Context, c *commission.StaffCommission) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommissionRepository) Update(ctx context.Context, c *commission.StaffCommission) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommissionRepository) Get(ctx context.Context, staffID kernel.UUID) (*commission.StaffCommission, error) {
	args := m.Called(ctx, staffID)
	c, _ := args.Get(0).(*commission.StaffCommission)
	return c, args.Error(1)
}

type MockPerformanceRepository struct{ mock.Mock }

func (m *MockPerformanceRepository) Save(ctx context.Context, r *performance.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockPerformanceRepository) Get(ctx context.Context, staffID kernel.UUID) (*performance.Record, error) {
	args := m.Called(ctx, staffID)
	r, _ := args.Get(0).(*performance.Record)
	return r, args.Error(1)
}

type MockSalaryRepository struct{ mock.Mock }

func (m *MockSalaryRepository) Add(ctx context.Context, s *performance.Salary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSalaryRepository) Update(ctx context.Context, s *performance.Salary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSalaryRepository) Get(ctx context.Context, staffID kernel.UUID) (*performance.Salary, error) {
	args := m.Called(ctx, staffID)
	s, _ := args.Get(0).(*performance.Salary)
	return s, args.Error(1)
}

func (m *MockSalaryRepository) List(ctx context.Context) ([]*performance.Salary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*performance.Salary)
	return s, args.Error(1)
}

type MockMonthlyReportRepository struct{ mock.Mock }

func (m *MockMonthlyReportRepository) Save(ctx context.Context, r *performance.MonthlyReport) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockMonthlyReportRepository) Get(
	ctx context.Context,
	staffID kernel.UUID,
	p performance.Period,
) (*performance.MonthlyReport, error) {
	args := m.Called(ctx, staffID, p)
	r, _ := args.Get(0).(*performance.MonthlyReport)
	return r, args.Error(1)
}

func (m *MockMonthlyReportRepository) ListByPeriod(ctx context.Context, p performance.Period) ([]*performance.MonthlyReport, error) {
	args := m.Called(ctx, p)
	r, _ := args.Get(0).([]*performance.MonthlyReport)
	return r, args.Error(1)
}

type MockCommentRepository struct{ mock.Mock }

func (m *MockCommentRepository) Add(ctx context.Context, c *comment.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*comment.Comment, error) {
	args := m.Called(ctx, orderID)
	c, _ := args.Get(0).([]*comment.Comment)
	return c, args.Error(1)
}

// MockUoW hands out the repository mocks it was built with.
type MockUoW struct {
	mock.Mock

	orders      *MockOrderRepository
	products    *MockProductRepository
	staff       *MockStaffRepository
	commissions *MockCommissionRepository
	performance *MockPerformanceRepository
	salaries    *MockSalaryRepository
	reports     *MockMonthlyReportRepository
	comments    *MockCommentRepository
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository                 { return m.orders }
func (m *MockUoW) ProductRepository() ports.ProductRepository             { return m.products }
func (m *MockUoW) StaffRepository() ports.StaffRepository                 { return m.staff }
func (m *MockUoW) CommissionRepository() ports.CommissionRepository       { return m.commissions }
func (m *MockUoW) PerformanceRepository() ports.PerformanceRepository     { return m.performance }
func (m *MockUoW) SalaryRepository() ports.SalaryRepository               { return m.salaries }
func (m *MockUoW) MonthlyReportRepository() ports.MonthlyReportRepository { return m.reports }
func (m *MockUoW) CommentRepository() ports.CommentRepository             { return m.comments }

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// fixture wires one MockUoW and its repositories into a factory.
type fixture struct {
	factory *MockUoWFactory
	uow     *MockUoW
}

func newFixture() *fixture {
	uow := &MockUoW{
		orders:      new(MockOrderRepository),
		products:    new(MockProductRepository),
		staff:       new(MockStaffRepository),
		commissions: new(MockCommissionRepository),
		performance: new(MockPerformanceRepository),
		salaries:    new(MockSalaryRepository),
		reports:     new(MockMonthlyReportRepository),
		comments:    new(MockCommentRepository),
	}
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return &fixture{factory: factory, uow: uow}
}

// expectTx expects Begin and the deferred Rollback, plus Commit when commit is true.
func (f *fixture) expectTx(commit bool) {
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	if commit {
		f.uow.On("Commit", mock.Anything).Return(nil).Once()
	}
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.factory.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.uow.orders.AssertExpectations(t)
	f.uow.products.AssertExpectations(t)
	f.uow.staff.AssertExpectations(t)
	f.uow.commissions.AssertExpectations(t)
	f.uow.performance.AssertExpectations(t)
	f.uow.salaries.AssertExpectations(t)
	f.uow.reports.AssertExpectations(t)
	f.uow.comments.AssertExpectations(t)
}

// 2026-03-02 09:00 UTC is a Monday.
var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type crew struct {
	sales, operation, manager *staff.Staff
}

func newCrew(t *testing.T) crew {
	t.Helper()
	s, err := staff.NewStaff(kernel.NewUUID(), "Sara", staff.Sales, "Sales")
	require.NoError(t, err)
	o, err := staff.NewStaff(kernel.NewUUID(), "Omar", staff.Operation, "Operations")
	require.NoError(t, err)
	m, err := staff.NewStaff(kernel.NewUUID(), "Mona", staff.Manager, "Operations")
	require.NoError(t, err)
	return crew{sales: s, operation: o, manager: m}
}

func actorOf(s *staff.Staff) order.Actor {
	return order.Actor{ID: s.ID().String(), Name: s.Name()}
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func newProduct(t *testing.T, services product.Services) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Dubai Mainland LLC", services)
	require.NoError(t, err)
	return p
}

func assignedOrder(t *testing.T, c crew, p *product.Product) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", p.ID(), usd(t, "2500"), []string{"AE"}, created)
	require.NoError(t, err)
	require.NoError(t, o.Submit(created))
	require.NoError(t, o.Assign(order.SalesParty, c.sales.ID()))
	require.NoError(t, o.Assign(order.OperationParty, c.operation.ID()))
	require.NoError(t, o.Assign(order.ManagerParty, c.manager.ID()))
	o.ClearDomainEvents()
	return o
}

// walk accepts stage by stage, one minute apart, until the order reaches target.
func walk(t *testing.T, o *order.Order, c crew, target order.Status) {
	t.Helper()
	at := created
	for o.Status() != target {
		at = at.Add(time.Minute)
		var actor order.Actor
		switch order.ResponsibleParty(o.Status()) {
		case order.SalesParty:
			actor = actorOf(c.sales)
		case order.OperationParty:
			actor = actorOf(c.operation)
		case order.ManagerParty:
			actor = actorOf(c.manager)
		default:
			actor = order.Actor{ID: order.ClientActorID}
		}
		require.NoError(t, o.Accept(actor, "", product.Services{}, at))
	}
	o.ClearDomainEvents()
}

func ptr(i int) *int { return &i }
