package directoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

func translateCreate(what string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewValueIsInvalidErrorWithCause(what+" id", err)
	}
	return err
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	dto := productFromDomain(p)
	return translateCreate("product", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}
	return productToDomain(dto)
}

type GormStaffRepository struct {
	db *gorm.DB
}

func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) Add(ctx context.Context, s *staff.Staff) error {
	if err := s.Validate(); err != nil {
		return err
	}
	dto := staffFromDomain(s)
	return translateCreate("staff", r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StaffDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff", id.String())
		}
		return nil, err
	}
	return staffToDomain(dto)
}
