package postgres

import (
	"fulfillment/internal/adapters/out/postgres/commentrepo"
	"fulfillment/internal/adapters/out/postgres/commissionrepo"
	"fulfillment/internal/adapters/out/postgres/directoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/performancerepo"

	"gorm.io/gorm"
)

// Models lists every table the adapters use, parents before children.
func Models() []any {
	return []any{
		&directoryrepo.ProductDTO{},
		&directoryrepo.StaffDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryEntryDTO{},
		&commentrepo.CommentDTO{},
		&commissionrepo.PlanDTO{},
		&commissionrepo.TierDTO{},
		&commissionrepo.EntryDTO{},
		&performancerepo.RecordDTO{},
		&performancerepo.DeltaDTO{},
		&performancerepo.SalaryDTO{},
		&performancerepo.DeductionDTO{},
		&performancerepo.MonthlyReportDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
