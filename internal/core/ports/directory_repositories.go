package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
)

// ProductRepository reads product master data. Add is used for seeding.
type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}

// StaffRepository reads the staff directory. Add is used for seeding.
type StaffRepository interface {
	Add(ctx context.Context, s *staff.Staff) error

	Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error)
}
