// Package performancerepo persists score records, salaries with their queued
// deductions, and monthly reports.
package performancerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordDTO struct {
	StaffID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Version int        `gorm:"not null;default:0"`
	Deltas  []DeltaDTO `gorm:"foreignKey:StaffID;references:StaffID"`
}

func (RecordDTO) TableName() string {
	return "performance_records"
}

// DeltaDTO rows are append-only. Key is the idempotency key of the event.
type DeltaDTO struct {
	StaffID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Key       string     `gorm:"column:idempotency_key;primaryKey"`
	EventType string     `gorm:"not null"`
	Points    int        `gorm:"not null"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	At        time.Time  `gorm:"column:occurred_at;not null;index"`
}

func (DeltaDTO) TableName() string {
	return "performance_deltas"
}

type SalaryDTO struct {
	StaffID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Currency                  string          `gorm:"type:char(3);not null"`
	Base                      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	UnderperformanceDeduction decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	UnderperformanceThreshold int             `gorm:"not null"`
	RejectionFee              decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	TotalRejectionFees        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NextPaymentDate           time.Time
	Version                   int            `gorm:"not null;default:0"`
	Deductions                []DeductionDTO `gorm:"foreignKey:StaffID;references:StaffID"`
}

func (SalaryDTO) TableName() string {
	return "salaries"
}

// DeductionDTO holds at most one row per staff member and month.
type DeductionDTO struct {
	StaffID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Year    int             `gorm:"primaryKey"`
	Month   int             `gorm:"primaryKey"`
	Amount  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

func (DeductionDTO) TableName() string {
	return "salary_deductions"
}

type MonthlyReportDTO struct {
	StaffID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Year             int             `gorm:"primaryKey"`
	Month            int             `gorm:"primaryKey"`
	TotalScore       int             `gorm:"not null"`
	ScoreTrend       int             `gorm:"not null"`
	Status           string          `gorm:"not null"`
	Rejections       int             `gorm:"not null"`
	EarlyCompletions int             `gorm:"not null"`
	SalaryImpact     bool            `gorm:"not null"`
	DeductionAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency         string          `gorm:"type:char(3);not null"`
	GeneratedAt      time.Time       `gorm:"not null"`
}

func (MonthlyReportDTO) TableName() string {
	return "monthly_reports"
}

func deltasFromDomain(staffID uuid.UUID, deltas []performance.Delta) []DeltaDTO {
	dtos := make([]DeltaDTO, 0, len(deltas))
	for _, d := range deltas {
		var orderID *uuid.UUID
		if id := d.OrderID(); id != nil {
			raw := id.Bytes()
			orderID = &raw
		}
		dtos = append(dtos, DeltaDTO{
			StaffID:   staffID,
			Key:       d.Key(),
			EventType: d.EventType().String(),
			Points:    d.Points(),
			OrderID:   orderID,
			At:        d.At(),
		})
	}
	return dtos
}

func recordToDomain(dto RecordDTO) (*performance.Record, error) {
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}

	deltas := make([]performance.Delta, 0, len(dto.Deltas))
	for _, d := range dto.Deltas {
		eventType, typeErr := performance.ParseEventType(d.EventType)
		if typeErr != nil {
			return nil, typeErr
		}
		var orderID *kernel.UUID
		if d.OrderID != nil {
			id, idErr := kernel.UUIDFromBytes(d.OrderID[:])
			if idErr != nil {
				return nil, idErr
			}
			orderID = &id
		}
		delta, deltaErr := performance.RestoreDelta(d.Key, eventType, d.Points, orderID, d.At)
		if deltaErr != nil {
			return nil, deltaErr
		}
		deltas = append(deltas, delta)
	}
	return performance.RestoreRecord(staffID, deltas, dto.Version)
}

func salaryFromDomain(s *performance.Salary) SalaryDTO {
	staffID := s.StaffID().Bytes()
	terms := s.Terms()
	dto := SalaryDTO{
		StaffID:                   staffID,
		Currency:                  terms.Base.Currency().Code(),
		Base:                      terms.Base.Amount(),
		UnderperformanceDeduction: terms.UnderperformanceDeduction.Amount(),
		UnderperformanceThreshold: terms.UnderperformanceThreshold,
		RejectionFee:              terms.RejectionFee.Amount(),
		TotalRejectionFees:        s.TotalRejectionFees().Amount(),
		NextPaymentDate:           terms.NextPaymentDate,
		Version:                   s.Version(),
	}
	for _, d := range s.PendingDeductions() {
		dto.Deductions = append(dto.Deductions, DeductionDTO{
			StaffID: staffID,
			Year:    d.Period.Year,
			Month:   int(d.Period.Month),
			Amount:  d.Amount.Amount(),
		})
	}
	return dto
}

func salaryToDomain(dto SalaryDTO) (*performance.Salary, error) {
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}
	cur, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	money := func(d decimal.Decimal) (kernel.Money, error) {
		return kernel.NewMoney(d, cur)
	}
	base, err := money(dto.Base)
	if err != nil {
		return nil, err
	}
	deduction, err := money(dto.UnderperformanceDeduction)
	if err != nil {
		return nil, err
	}
	fee, err := money(dto.RejectionFee)
	if err != nil {
		return nil, err
	}
	totalFees, err := money(dto.TotalRejectionFees)
	if err != nil {
		return nil, err
	}

	terms := performance.SalaryTerms{
		Base:                      base,
		UnderperformanceDeduction: deduction,
		RejectionFee:              fee,
	}
	terms.UnderperformanceThreshold = dto.UnderperformanceThreshold
	terms.NextPaymentDate = dto.NextPaymentDate

	deductions := make([]performance.Deduction, 0, len(dto.Deductions))
	for _, d := range dto.Deductions {
		period, periodErr := performance.NewPeriod(d.Year, time.Month(d.Month))
		if periodErr != nil {
			return nil, periodErr
		}
		amount, moneyErr := money(d.Amount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		deductions = append(deductions, performance.Deduction{Period: period, Amount: amount})
	}

	return performance.RestoreSalary(staffID, terms, totalFees, deductions, dto.Version)
}

func reportFromDomain(r *performance.MonthlyReport) MonthlyReportDTO {
	return MonthlyReportDTO{
		StaffID:          r.StaffID.Bytes(),
		Year:             r.Period.Year,
		Month:            int(r.Period.Month),
		TotalScore:       r.TotalScore,
		ScoreTrend:       r.ScoreTrend,
		Status:           r.Status.String(),
		Rejections:       r.Rejections,
		EarlyCompletions: r.EarlyCompletions,
		SalaryImpact:     r.SalaryImpact,
		DeductionAmount:  r.DeductionAmount.Amount(),
		Currency:         r.DeductionAmount.Currency().Code(),
		GeneratedAt:      r.GeneratedAt,
	}
}

func reportToDomain(dto MonthlyReportDTO) (*performance.MonthlyReport, error) {
	staffID, err := kernel.UUIDFromBytes(dto.StaffID[:])
	if err != nil {
		return nil, err
	}
	period, err := performance.NewPeriod(dto.Year, time.Month(dto.Month))
	if err != nil {
		return nil, err
	}
	status, err := performance.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	cur, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	deduction, err := kernel.NewMoney(dto.DeductionAmount, cur)
	if err != nil {
		return nil, err
	}

	return &performance.MonthlyReport{
		StaffID:          staffID,
		Period:           period,
		TotalScore:       dto.TotalScore,
		ScoreTrend:       dto.ScoreTrend,
		Status:           status,
		Rejections:       dto.Rejections,
		EarlyCompletions: dto.EarlyCompletions,
		SalaryImpact:     dto.SalaryImpact,
		DeductionAmount:  deduction,
		GeneratedAt:      dto.GeneratedAt,
	}, nil
}
