package performancerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPerformanceRepository struct {
	db *gorm.DB
}

func NewGormPerformanceRepository(db *gorm.DB) *GormPerformanceRepository {
	return &GormPerformanceRepository{db: db}
}

// Save creates the record row at version 1 when record.Version() is 0, and
// otherwise advances the stored version only if it still equals
// record.Version(). Deltas not stored yet are appended.
func (r *GormPerformanceRepository) Save(ctx context.Context, record *performance.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := RecordDTO{StaffID: record.StaffID().Bytes(), Version: record.Version() + 1}
	var result *gorm.DB
	if record.Version() == 0 {
		result = db.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&dto)
	} else {
		result = db.Model(&RecordDTO{}).
			Where("staff_id = ? AND version = ?", dto.StaffID, record.Version()).
			Update("version", dto.Version)
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("performance record", record.StaffID().String(), record.Version())
	}

	deltas := deltasFromDomain(dto.StaffID, record.Deltas())
	if len(deltas) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&deltas).Error; err != nil {
			return err
		}
	}

	record.AdvanceVersion()
	return nil
}

func (r *GormPerformanceRepository) Get(ctx context.Context, staffID kernel.UUID) (*performance.Record, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		Preload("Deltas", func(db *gorm.DB) *gorm.DB { return db.Order("occurred_at ASC, idempotency_key ASC") }).
		First(&dto, "staff_id = ?", staffID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("performance record", staffID.String())
		}
		return nil, err
	}
	return recordToDomain(dto)
}

type GormSalaryRepository struct {
	db *gorm.DB
}

func NewGormSalaryRepository(db *gorm.DB) *GormSalaryRepository {
	return &GormSalaryRepository{db: db}
}

func (r *GormSalaryRepository) Add(ctx context.Context, s *performance.Salary) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := salaryFromDomain(s)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("salary staff id", err)
		}
		return err
	}
	return saveDeductions(db, dto.Deductions)
}

// Update rewrites the salary terms and accrued fees only if the stored version
// still equals s.Version(), then advances the salary's version. Deductions are
// only ever added.
func (r *GormSalaryRepository) Update(ctx context.Context, s *performance.Salary) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := salaryFromDomain(s)
	dto.Version = s.Version() + 1
	db := r.db.WithContext(ctx)
	result := db.Model(&SalaryDTO{}).
		Where("staff_id = ? AND version = ?", dto.StaffID, s.Version()).
		Select("*").
		Omit("staff_id", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&SalaryDTO{}).Where("staff_id = ?", dto.StaffID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("salary", s.StaffID().String())
		}
		return errs.NewConflictError("salary", s.StaffID().String(), s.Version())
	}

	if err := saveDeductions(db, dto.Deductions); err != nil {
		return err
	}

	s.AdvanceVersion()
	return nil
}

func saveDeductions(db *gorm.DB, deductions []DeductionDTO) error {
	if len(deductions) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&deductions).Error
}

func withDeductions(db *gorm.DB) *gorm.DB {
	return db.Preload("Deductions", func(db *gorm.DB) *gorm.DB { return db.Order("year ASC, month ASC") })
}

func (r *GormSalaryRepository) Get(ctx context.Context, staffID kernel.UUID) (*performance.Salary, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dto SalaryDTO
	if err := withDeductions(r.db.WithContext(ctx)).First(&dto, "staff_id = ?", staffID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("salary", staffID.String())
		}
		return nil, err
	}
	return salaryToDomain(dto)
}

func (r *GormSalaryRepository) List(ctx context.Context) ([]*performance.Salary, error) {
	var dtos []SalaryDTO
	if err := withDeductions(r.db.WithContext(ctx)).Order("staff_id ASC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	salaries := make([]*performance.Salary, 0, len(dtos))
	for _, dto := range dtos {
		s, err := salaryToDomain(dto)
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}
	return salaries, nil
}

type GormMonthlyReportRepository struct {
	db *gorm.DB
}

func NewGormMonthlyReportRepository(db *gorm.DB) *GormMonthlyReportRepository {
	return &GormMonthlyReportRepository{db: db}
}

// Save replaces the stored report of the same staff member and period.
func (r *GormMonthlyReportRepository) Save(ctx context.Context, report *performance.MonthlyReport) error {
	if report == nil {
		return errs.NewValueIsRequiredError("monthly report")
	}
	if err := report.StaffID.Validate(); err != nil {
		return err
	}
	dto := reportFromDomain(report)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto).Error
}

func (r *GormMonthlyReportRepository) Get(
	ctx context.Context,
	staffID kernel.UUID,
	p performance.Period,
) (*performance.MonthlyReport, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dto MonthlyReportDTO
	err := r.db.WithContext(ctx).
		First(&dto, "staff_id = ? AND year = ? AND month = ?", staffID.Bytes(), p.Year, int(p.Month)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("monthly report", staffID.String()+"/"+p.String())
		}
		return nil, err
	}
	return reportToDomain(dto)
}

func (r *GormMonthlyReportRepository) ListByPeriod(ctx context.Context, p performance.Period) ([]*performance.MonthlyReport, error) {
	var dtos []MonthlyReportDTO
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", p.Year, int(p.Month)).
		Order("staff_id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	reports := make([]*performance.MonthlyReport, 0, len(dtos))
	for _, dto := range dtos {
		report, err := reportToDomain(dto)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
