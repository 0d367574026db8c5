package commissionrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/commission"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormCommissionRepository struct {
	db *gorm.DB
}

func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

func (r *GormCommissionRepository) Add(ctx context.Context, c *commission.StaffCommission) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("commission staff id", err)
		}
		return err
	}
	if err := saveTiers(db, dto.StaffID, dto.Tiers); err != nil {
		return err
	}
	return insertEntries(db, dto.Entries)
}

// Update writes the plan only if the stored version still equals c.Version(),
// then advances the plan's version. Tiers are replaced, new entries inserted
// and pending entries now paid are marked. A stored paid entry is never
// touched.
func (r *GormCommissionRepository) Update(ctx context.Context, c *commission.StaffCommission) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	db := r.db.WithContext(ctx)
	result := db.Model(&PlanDTO{}).
		Where("staff_id = ? AND version = ?", dto.StaffID, c.Version()).
		Updates(map[string]any{"currency": dto.Currency, "version": gorm.Expr("version + 1")})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&PlanDTO{}).Where("staff_id = ?", dto.StaffID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("commission", c.StaffID().String())
		}
		return errs.NewConflictError("commission", c.StaffID().String(), c.Version())
	}

	if err := saveTiers(db, dto.StaffID, dto.Tiers); err != nil {
		return err
	}
	if err := insertEntries(db, dto.Entries); err != nil {
		return err
	}
	if err := markPaid(db, dto.Entries); err != nil {
		return err
	}

	c.AdvanceVersion()
	return nil
}

func saveTiers(db *gorm.DB, staffID any, tiers []TierDTO) error {
	if err := db.Where("staff_id = ?", staffID).Delete(&TierDTO{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	return db.Create(&tiers).Error
}

func insertEntries(db *gorm.DB, entries []EntryDTO) error {
	if len(entries) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entries).Error
}

func markPaid(db *gorm.DB, entries []EntryDTO) error {
	paid := commission.Paid.String()
	for _, e := range entries {
		if e.Status != paid {
			continue
		}
		err := db.Model(&EntryDTO{}).
			Where("id = ? AND status = ?", e.ID, commission.Pending.String()).
			Updates(map[string]any{"status": paid, "paid_at": e.PaidAt}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GormCommissionRepository) Get(ctx context.Context, staffID kernel.UUID) (*commission.StaffCommission, error) {
	if err := staffID.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, order_count ASC") }).
		First(&dto, "staff_id = ?", staffID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("commission", staffID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
