package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order together with its history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	history := dto.History
	dto.History = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("order", err)
		}
		return err
	}
	return appendHistory(db, history)
}

// Update writes the order only if the stored version still equals
// aggregate.Version(), then advances the aggregate's version. New history lines
// are appended; stored ones are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	history := dto.History
	dto.History = nil
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "number", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewConflictError("order", aggregate.ID().String(), aggregate.Version())
	}

	if err := appendHistory(db, history); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func appendHistory(db *gorm.DB, history []HistoryEntryDTO) error {
	if len(history) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&history).Error
}

func withHistory(db *gorm.DB) *gorm.DB {
	return db.Preload("History", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := withHistory(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListActive returns orders in a stage with a running deadline, oldest first.
func (r *GormOrderRepository) ListActive(ctx context.Context) ([]*order.Order, error) {
	active := make([]string, 0)
	for _, s := range order.Statuses() {
		if s.IsActive() {
			active = append(active, s.String())
		}
	}

	var dtos []OrderDTO
	if err := withHistory(r.db.WithContext(ctx)).
		Where("status IN ?", active).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
