package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"
)

func ordersOf(t tables) map[kernel.UUID]order.Snapshot                   { return t.orders }
func productsOf(t tables) map[kernel.UUID]*product.Product               { return t.products }
func staffOf(t tables) map[kernel.UUID]*staff.Staff                      { return t.staff }
func commissionsOf(t tables) map[kernel.UUID]*commission.StaffCommission { return t.commissions }
func recordsOf(t tables) map[kernel.UUID]*performance.Record             { return t.records }
func salariesOf(t tables) map[kernel.UUID]*performance.Salary            { return t.salaries }
func reportsOf(t tables) map[reportKey]performance.MonthlyReport         { return t.reports }

func alreadyExists(what string, id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause(what+" id", fmt.Errorf("%s %s already exists", what, id))
}

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, ordersOf, aggregate.ID()); ok {
		return alreadyExists("order", aggregate.ID())
	}

	r.uow.staged.orders[aggregate.ID()] = aggregate.Snapshot()
	r.uow.markAdded(rowKey{ordersTable, aggregate.ID()})
	return nil
}

// Update stages the order at Version()+1 if the version it was loaded at is
// still current. Commit checks the version again.
func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}

	id := aggregate.ID()
	current, ok := lookup(r.uow, ordersOf, id)
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	if current.Version != aggregate.Version() {
		return errs.NewConflictError("order", id.String(), aggregate.Version())
	}

	snapshot := aggregate.Snapshot()
	snapshot.Version++
	r.uow.staged.orders[id] = snapshot
	r.uow.markUpdated(rowKey{ordersTable, id}, aggregate.Version())
	aggregate.AdvanceVersion()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	snapshot, ok := lookup(r.uow, ordersOf, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(snapshot)
}

func (r *orderRepository) ListActive(_ context.Context) ([]*order.Order, error) {
	rows := scan(r.uow, ordersOf)
	orders := make([]*order.Order, 0, len(rows))
	for _, snapshot := range rows {
		if !snapshot.Status.IsActive() {
			continue
		}
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b *order.Order) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return orders, nil
}

type productRepository struct {
	uow *UnitOfWork
}

func (r *productRepository) Add(_ context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, productsOf, p.ID()); ok {
		return alreadyExists("product", p.ID())
	}
	r.uow.staged.products[p.ID()] = p
	r.uow.markAdded(rowKey{productsTable, p.ID()})
	return nil
}

func (r *productRepository) Get(_ context.Context, id kernel.UUID) (*product.Product, error) {
	p, ok := lookup(r.uow, productsOf, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

type staffRepository struct {
	uow *UnitOfWork
}

func (r *staffRepository) Add(_ context.Context, s *staff.Staff) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, staffOf, s.ID()); ok {
		return alreadyExists("staff", s.ID())
	}
	r.uow.staged.staff[s.ID()] = s
	r.uow.markAdded(rowKey{staffTable, s.ID()})
	return nil
}

func (r *staffRepository) Get(_ context.Context, id kernel.UUID) (*staff.Staff, error) {
	s, ok := lookup(r.uow, staffOf, id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("staff", id.String())
	}
	return s, nil
}

type commissionRepository struct {
	uow *UnitOfWork
}

func (r *commissionRepository) Add(_ context.Context, c *commission.StaffCommission) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, commissionsOf, c.StaffID()); ok {
		return alreadyExists("commission plan", c.StaffID())
	}

	clone, err := cloneCommission(c)
	if err != nil {
		return err
	}
	r.uow.staged.commissions[c.StaffID()] = clone
	r.uow.markAdded(rowKey{commissionsTable, c.StaffID()})
	return nil
}

// Update stages the plan at Version()+1 if the version it was loaded at is
// still current.
func (r *commissionRepository) Update(_ context.Context, c *commission.StaffCommission) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}

	id := c.StaffID()
	current, ok := lookup(r.uow, commissionsOf, id)
	if !ok {
		return errs.NewObjectNotFoundError("commission plan", id.String())
	}
	if current.Version() != c.Version() {
		return errs.NewConflictError("commission plan", id.String(), c.Version())
	}

	clone, err := cloneCommission(c)
	if err != nil {
		return err
	}
	clone.AdvanceVersion()
	r.uow.staged.commissions[id] = clone
	r.uow.markUpdated(rowKey{commissionsTable, id}, c.Version())
	c.AdvanceVersion()
	return nil
}

func (r *commissionRepository) Get(_ context.Context, staffID kernel.UUID) (*commission.StaffCommission, error) {
	c, ok := lookup(r.uow, commissionsOf, staffID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("commission plan", staffID.String())
	}
	return cloneCommission(c)
}

type performanceRepository struct {
	uow *UnitOfWork
}

// Save stages the record at Version()+1. A record at version 0 must not be
// stored yet; any other must still be stored at its version.
func (r *performanceRepository) Save(_ context.Context, rec *performance.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}

	id := rec.StaffID()
	stored := absent
	if current, ok := lookup(r.uow, recordsOf, id); ok {
		stored = current.Version()
	}
	expected := rec.Version()
	if expected == 0 {
		expected = absent
	}
	if stored != expected {
		return errs.NewConflictError("performance record", id.String(), rec.Version())
	}

	clone, err := cloneRecord(rec)
	if err != nil {
		return err
	}
	clone.AdvanceVersion()
	r.uow.staged.records[id] = clone
	r.uow.markUpdated(rowKey{recordsTable, id}, expected)
	rec.AdvanceVersion()
	return nil
}

func (r *performanceRepository) Get(_ context.Context, staffID kernel.UUID) (*performance.Record, error) {
	rec, ok := lookup(r.uow, recordsOf, staffID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("performance record", staffID.String())
	}
	return cloneRecord(rec)
}

type salaryRepository struct {
	uow *UnitOfWork
}

func (r *salaryRepository) Add(_ context.Context, s *performance.Salary) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	if _, ok := lookup(r.uow, salariesOf, s.StaffID()); ok {
		return alreadyExists("salary", s.StaffID())
	}

	clone, err := cloneSalary(s)
	if err != nil {
		return err
	}
	r.uow.staged.salaries[s.StaffID()] = clone
	r.uow.markAdded(rowKey{salariesTable, s.StaffID()})
	return nil
}

func (r *salaryRepository) Update(_ context.Context, s *performance.Salary) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}

	id := s.StaffID()
	current, ok := lookup(r.uow, salariesOf, id)
	if !ok {
		return errs.NewObjectNotFoundError("salary", id.String())
	}
	if current.Version() != s.Version() {
		return errs.NewConflictError("salary", id.String(), s.Version())
	}

	clone, err := cloneSalary(s)
	if err != nil {
		return err
	}
	clone.AdvanceVersion()
	r.uow.staged.salaries[id] = clone
	r.uow.markUpdated(rowKey{salariesTable, id}, s.Version())
	s.AdvanceVersion()
	return nil
}

func (r *salaryRepository) Get(_ context.Context, staffID kernel.UUID) (*performance.Salary, error) {
	s, ok := lookup(r.uow, salariesOf, staffID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("salary", staffID.String())
	}
	return cloneSalary(s)
}

func (r *salaryRepository) List(_ context.Context) ([]*performance.Salary, error) {
	rows := scan(r.uow, salariesOf)
	salaries := make([]*performance.Salary, 0, len(rows))
	for _, s := range rows {
		clone, err := cloneSalary(s)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, clone)
	}
	slices.SortFunc(salaries, func(a, b *performance.Salary) int {
		return cmp.Compare(a.StaffID().String(), b.StaffID().String())
	})
	return salaries, nil
}

type reportRepository struct {
	uow *UnitOfWork
}

func (r *reportRepository) Save(_ context.Context, report *performance.MonthlyReport) error {
	if report == nil {
		return errs.NewValueIsRequiredError("monthly report")
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	r.uow.staged.reports[reportKey{staffID: report.StaffID, period: report.Period}] = *report
	return nil
}

func (r *reportRepository) Get(
	_ context.Context,
	staffID kernel.UUID,
	p performance.Period,
) (*performance.MonthlyReport, error) {
	report, ok := lookup(r.uow, reportsOf, reportKey{staffID: staffID, period: p})
	if !ok {
		return nil, errs.NewObjectNotFoundError("monthly report", fmt.Sprintf("%s/%s", staffID, p))
	}
	return &report, nil
}

func (r *reportRepository) ListByPeriod(_ context.Context, p performance.Period) ([]*performance.MonthlyReport, error) {
	reports := make([]*performance.MonthlyReport, 0)
	for key, report := range scan(r.uow, reportsOf) {
		if key.period != p {
			continue
		}
		reports = append(reports, &report)
	}
	slices.SortFunc(reports, func(a, b *performance.MonthlyReport) int {
		return cmp.Compare(a.StaffID.String(), b.StaffID.String())
	})
	return reports, nil
}

type commentRepository struct {
	uow *UnitOfWork
}

func (r *commentRepository) Add(_ context.Context, c *comment.Comment) error {
	if c == nil {
		return errs.NewValueIsRequiredError("comment")
	}
	if err := r.uow.checkActive(); err != nil {
		return err
	}
	r.uow.staged.comments[c.OrderID()] = append(r.uow.staged.comments[c.OrderID()], c)
	return nil
}

func (r *commentRepository) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*comment.Comment, error) {
	r.uow.store.mu.RLock()
	comments := slices.Clone(r.uow.store.comments[orderID])
	r.uow.store.mu.RUnlock()

	if r.uow.active {
		comments = append(comments, r.uow.staged.comments[orderID]...)
	}
	slices.SortStableFunc(comments, func(a, b *comment.Comment) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return comments, nil
}
