// Package directoryrepo stores the product catalogue and the staff directory
// the workflow reads from.
package directoryrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	Apostille       bool
	Shipping        bool
	POA             bool
	FinancialReport bool
}

func (ProductDTO) TableName() string {
	return "products"
}

type StaffDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"not null"`
	Role       string    `gorm:"not null"`
	Department string
	Eligible   pq.StringArray `gorm:"type:text[]"`
}

func (StaffDTO) TableName() string {
	return "staff"
}

func productFromDomain(p *product.Product) ProductDTO {
	s := p.Services()
	return ProductDTO{
		ID:              p.ID().Bytes(),
		Name:            p.Name(),
		Apostille:       s.Apostille,
		Shipping:        s.Shipping,
		POA:             s.POA,
		FinancialReport: s.FinancialReport,
	}
}

func productToDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return product.NewProduct(id, dto.Name, product.Services{
		Apostille:       dto.Apostille,
		Shipping:        dto.Shipping,
		POA:             dto.POA,
		FinancialReport: dto.FinancialReport,
	})
}

func staffFromDomain(s *staff.Staff) StaffDTO {
	eligible := make(pq.StringArray, 0, len(s.EligibleRoles()))
	for _, r := range s.EligibleRoles() {
		eligible = append(eligible, r.String())
	}
	return StaffDTO{
		ID:         s.ID().Bytes(),
		Name:       s.Name(),
		Role:       s.Role().String(),
		Department: s.Department(),
		Eligible:   eligible,
	}
}

func staffToDomain(dto StaffDTO) (*staff.Staff, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := staff.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	eligible := make([]staff.Role, 0, len(dto.Eligible))
	for _, s := range dto.Eligible {
		r, roleErr := staff.ParseRole(s)
		if roleErr != nil {
			return nil, roleErr
		}
		eligible = append(eligible, r)
	}
	return staff.NewStaff(id, dto.Name, role, dto.Department, eligible...)
}
