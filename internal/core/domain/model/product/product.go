// Package product holds the read model of a company-formation package: its
// identity and the optional services that must be delivered before an order
// sold with it can be completed.
package product

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Services are the optional deliverables of a product. The same shape records
// which services an order has completed.
type Services struct {
	Apostille       bool
	Shipping        bool
	POA             bool
	FinancialReport bool
}

// Any reports whether at least one service is set.
func (s Services) Any() bool {
	return s.Apostille || s.Shipping || s.POA || s.FinancialReport
}

// Union returns the services set in either s or other.
func (s Services) Union(other Services) Services {
	return Services{
		Apostille:       s.Apostille || other.Apostille,
		Shipping:        s.Shipping || other.Shipping,
		POA:             s.POA || other.POA,
		FinancialReport: s.FinancialReport || other.FinancialReport,
	}
}

type Product struct {
	id       kernel.UUID
	name     string
	services Services
	guard    guard.ConstructorGuard
}

func NewProduct(id kernel.UUID, name string, services Services) (*Product, error) {
	p := &Product{services: services, guard: guard.NewConstructorGuard()}

	if err := id.Validate(); err != nil {
		return nil, err
	}
	p.id = id

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameIsRequired
	}
	p.name = name

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID    { return p.id }
func (p *Product) Name() string       { return p.name }
func (p *Product) Services() Services { return p.services }
func (p *Product) HasApostille() bool { return p.services.Apostille }
