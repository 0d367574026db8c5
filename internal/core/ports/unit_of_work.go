package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one transaction. Repositories must be
// obtained after Begin to take part in it.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	ProductRepository() ProductRepository

	StaffRepository() StaffRepository

	CommissionRepository() CommissionRepository

	PerformanceRepository() PerformanceRepository

	SalaryRepository() SalaryRepository

	MonthlyReportRepository() MonthlyReportRepository

	CommentRepository() CommentRepository
}
