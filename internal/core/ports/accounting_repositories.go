package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/comment"
	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
)

type CommissionRepository interface {
	Add(ctx context.Context, c *commission.StaffCommission) error

	// Update stores new entries and entry status changes if the stored version
	// still equals c.Version(); otherwise it returns *errs.ConflictError.
	// Entries are never removed.
	Update(ctx context.Context, c *commission.StaffCommission) error

	Get(ctx context.Context, staffID kernel.UUID) (*commission.StaffCommission, error)
}

type PerformanceRepository interface {
	// Save appends deltas not stored yet; stored deltas are left untouched. A
	// record at version 0 must not be stored yet, any other must still be
	// stored at its version, or *errs.ConflictError is returned.
	Save(ctx context.Context, r *performance.Record) error

	Get(ctx context.Context, staffID kernel.UUID) (*performance.Record, error)
}

type SalaryRepository interface {
	Add(ctx context.Context, s *performance.Salary) error

	// Update fails with *errs.ConflictError unless the stored version still
	// equals s.Version().
	Update(ctx context.Context, s *performance.Salary) error

	Get(ctx context.Context, staffID kernel.UUID) (*performance.Salary, error)

	List(ctx context.Context) ([]*performance.Salary, error)
}

type MonthlyReportRepository interface {
	// Save replaces the report of the same staff member and period.
	Save(ctx context.Context, r *performance.MonthlyReport) error

	Get(ctx context.Context, staffID kernel.UUID, p performance.Period) (*performance.MonthlyReport, error)

	ListByPeriod(ctx context.Context, p performance.Period) ([]*performance.MonthlyReport, error)
}

type CommentRepository interface {
	Add(ctx context.Context, c *comment.Comment) error

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*comment.Comment, error)
}
