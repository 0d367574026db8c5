package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
)

// OrderView is the read model of an order without its history.
type OrderView struct {
	ID                kernel.UUID
	Number            string
	Status            order.Status
	ProductID         kernel.UUID
	Amount            kernel.Money
	Countries         []string
	CreatedAt         time.Time
	CompletedAt       *time.Time
	CompletedServices product.Services
	SalesID           *kernel.UUID
	OperationID       *kernel.UUID
	ManagerID         *kernel.UUID
	RejectionReasons  []string
	ResponsibleID     string
	Version           int
}

// NewOrderView projects an order loaded by any handler.
func NewOrderView(o *order.Order) OrderView {
	return OrderView{
		ID:                o.ID(),
		Number:            o.Number(),
		Status:            o.Status(),
		ProductID:         o.ProductID(),
		Amount:            o.Amount(),
		Countries:         o.Countries(),
		CreatedAt:         o.CreatedAt(),
		CompletedAt:       o.CompletedAt(),
		CompletedServices: o.CompletedServices(),
		SalesID:           o.SalesID(),
		OperationID:       o.OperationID(),
		ManagerID:         o.ManagerID(),
		RejectionReasons:  o.RejectionReasons(),
		ResponsibleID:     o.ResponsibleID(),
		Version:           o.Version(),
	}
}
