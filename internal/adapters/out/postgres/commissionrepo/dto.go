// Package commissionrepo persists commission plans, their tiers and the
// accrued entries.
package commissionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanDTO is the commission plan of one staff member.
type PlanDTO struct {
	StaffID  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Currency string     `gorm:"type:char(3);not null"`
	Version  int        `gorm:"not null;default:0"`
	Tiers    []TierDTO  `gorm:"foreignKey:StaffID;references:StaffID"`
	Entries  []EntryDTO `gorm:"foreignKey:StaffID;references:StaffID"`
}

func (PlanDTO) TableName() string {
	return "commission_plans"
}

// TierDTO rows are replaced as a whole whenever the plan changes.
type TierDTO struct {
	StaffID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"primaryKey"`
	MinCount    int       `gorm:"not null"`
	MaxCount    *int
	Rate        decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	FixedAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

func (TierDTO) TableName() string {
	return "commission_tiers"
}

// EntryDTO keeps a copy of the tier it was computed with.
type EntryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_commission_invoice"`
	InvoiceID     string    `gorm:"not null;uniqueIndex:idx_commission_invoice"`
	OrderCount    int       `gorm:"not null"`
	TierMin       int       `gorm:"not null"`
	TierMax       *int
	TierRate      decimal.Decimal `gorm:"type:numeric(9,4);not null"`
	TierFixed     decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	InvoiceAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Commission    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status        string          `gorm:"index;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	PaidAt        *time.Time
}

func (EntryDTO) TableName() string {
	return "commission_entries"
}

func tiersFromDomain(staffID uuid.UUID, tiers []commission.Tier) []TierDTO {
	dtos := make([]TierDTO, 0, len(tiers))
	for i, t := range tiers {
		dtos = append(dtos, TierDTO{
			StaffID:     staffID,
			Position:    i,
			MinCount:    t.Min(),
			MaxCount:    t.Max(),
			Rate:        t.Rate(),
			FixedAmount: t.Fixed().Amount(),
		})
	}
	return dtos
}

func entriesFromDomain(staffID uuid.UUID, entries []commission.Entry) []EntryDTO {
	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		t := e.Tier()
		dtos = append(dtos, EntryDTO{
			ID:            e.ID().Bytes(),
			StaffID:       staffID,
			InvoiceID:     e.InvoiceID(),
			OrderCount:    e.OrderCount(),
			TierMin:       t.Min(),
			TierMax:       t.Max(),
			TierRate:      t.Rate(),
			TierFixed:     t.Fixed().Amount(),
			InvoiceAmount: e.InvoiceAmount().Amount(),
			Commission:    e.Commission().Amount(),
			Status:        e.Status().String(),
			CreatedAt:     e.CreatedAt(),
			PaidAt:        e.PaidAt(),
		})
	}
	return dtos
}

func fromDomain(c *commission.StaffCommission) PlanDTO {
	staffID := c.StaffID().Bytes()
	return PlanDTO{
		StaffID:  staffID,
		Currency: c.Currency().Code(),
		Version:  c.Version(),
		Tiers:    tiersFromDomain(staffID, c.Tiers()),
		Entries:  entriesFromDomain(staffID, c.Entries()),
	}
}

func toDomain(dto PlanDTO) (*commission.StaffCommission, error) {
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

	tiers := make([]commission.Tier, 0, len(dto.Tiers))
	for _, t := range dto.Tiers {
		fixed, moneyErr := money(t.FixedAmount)
		if moneyErr != nil {
			return nil, moneyErr
		}
		tier, tierErr := commission.NewTier(t.MinCount, t.MaxCount, t.Rate, fixed)
		if tierErr != nil {
			return nil, tierErr
		}
		tiers = append(tiers, tier)
	}

	entries := make([]commission.Entry, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		entry, entryErr := entryToDomain(e, money)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return commission.RestoreStaffCommission(staffID, cur, tiers, entries, dto.Version)
}

func entryToDomain(e EntryDTO, money func(decimal.Decimal) (kernel.Money, error)) (commission.Entry, error) {
	id, err := kernel.UUIDFromBytes(e.ID[:])
	if err != nil {
		return commission.Entry{}, err
	}
	fixed, err := money(e.TierFixed)
	if err != nil {
		return commission.Entry{}, err
	}
	tier, err := commission.NewTier(e.TierMin, e.TierMax, e.TierRate, fixed)
	if err != nil {
		return commission.Entry{}, err
	}
	invoiceAmount, err := money(e.InvoiceAmount)
	if err != nil {
		return commission.Entry{}, err
	}
	amount, err := money(e.Commission)
	if err != nil {
		return commission.Entry{}, err
	}
	status, err := commission.ParseEntryStatus(e.Status)
	if err != nil {
		return commission.Entry{}, err
	}

	return commission.RestoreEntry(id, e.InvoiceID, e.OrderCount, tier, invoiceAmount, amount, status, e.CreatedAt, e.PaidAt)
}
