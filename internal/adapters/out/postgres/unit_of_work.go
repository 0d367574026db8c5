// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work wraps one database transaction; every repository it
// hands out after Begin shares that transaction, so a workflow transition, the
// history line it appends and the commission or score changes it triggers are
// committed or rolled back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... change o ...
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err // *errs.ConflictError when another writer got there first
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one transaction at a time
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Orders are protected by a version column; other aggregates are
//     append-mostly and rely on unique keys
package postgres

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/commentrepo"
	"fulfillment/internal/adapters/out/postgres/commissionrepo"
	"fulfillment/internal/adapters/out/postgres/directoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/performancerepo"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work isolated from concurrent ones.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin again while a transaction is
// open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction if
// none is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which makes it safe to defer.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the open transaction, or the plain connection when Begin has
// not been called.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return directoryrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) StaffRepository() ports.StaffRepository {
	return directoryrepo.NewGormStaffRepository(uow.conn())
}

func (uow *GormUnitOfWork) CommissionRepository() ports.CommissionRepository {
	return commissionrepo.NewGormCommissionRepository(uow.conn())
}

func (uow *GormUnitOfWork) PerformanceRepository() ports.PerformanceRepository {
	return performancerepo.NewGormPerformanceRepository(uow.conn())
}

func (uow *GormUnitOfWork) SalaryRepository() ports.SalaryRepository {
	return performancerepo.NewGormSalaryRepository(uow.conn())
}

func (uow *GormUnitOfWork) MonthlyReportRepository() ports.MonthlyReportRepository {
	return performancerepo.NewGormMonthlyReportRepository(uow.conn())
}

func (uow *GormUnitOfWork) CommentRepository() ports.CommentRepository {
	return commentrepo.NewGormCommentRepository(uow.conn())
}
