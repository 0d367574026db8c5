// Package orderrepo maps the order aggregate and its history ledger onto the
// orders and order_history tables.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Version is the optimistic lock.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number      string          `gorm:"uniqueIndex;not null"`
	Status      string          `gorm:"index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Currency    string          `gorm:"type:char(3);not null"`
	Countries   pq.StringArray  `gorm:"type:text[]"`
	CreatedAt   time.Time       `gorm:"not null"`
	CompletedAt *time.Time

	ApostilleDone       bool
	ShippingDone        bool
	POADone             bool
	FinancialReportDone bool

	SalesID     *uuid.UUID `gorm:"type:uuid;index"`
	OperationID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index"`

	RejectionReasons pq.StringArray `gorm:"type:text[]"`
	Version          int            `gorm:"not null;default:0"`

	History []HistoryEntryDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO is one ledger line. Seq keeps the append order.
type HistoryEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_history_seq"`
	Seq            int       `gorm:"not null;uniqueIndex:idx_order_history_seq"`
	PreviousStatus string    `gorm:"not null"`
	NewStatus      string    `gorm:"not null"`
	Action         string    `gorm:"not null"`
	ActorID        string    `gorm:"not null"`
	ActorName      string
	Reason         string
	Notes          string
	CreatedAt      time.Time `gorm:"not null"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	dto := OrderDTO{
		ID:                  s.ID.Bytes(),
		Number:              s.Number,
		Status:              s.Status.String(),
		ProductID:           s.ProductID.Bytes(),
		Amount:              s.Amount.Amount(),
		Currency:            s.Amount.Currency().Code(),
		Countries:           pq.StringArray(s.Countries),
		CreatedAt:           s.CreatedAt,
		CompletedAt:         s.CompletedAt,
		ApostilleDone:       s.CompletedServices.Apostille,
		ShippingDone:        s.CompletedServices.Shipping,
		POADone:             s.CompletedServices.POA,
		FinancialReportDone: s.CompletedServices.FinancialReport,
		SalesID:             optionalID(s.SalesID),
		OperationID:         optionalID(s.OperationID),
		ManagerID:           optionalID(s.ManagerID),
		RejectionReasons:    pq.StringArray(s.RejectionReasons),
		Version:             s.Version,
	}

	dto.History = make([]HistoryEntryDTO, 0, len(s.History))
	for i, e := range s.History {
		dto.History = append(dto.History, HistoryEntryDTO{
			ID:             e.ID().Bytes(),
			OrderID:        dto.ID,
			Seq:            i,
			PreviousStatus: e.PreviousStatus().String(),
			NewStatus:      e.NewStatus().String(),
			Action:         e.Action().String(),
			ActorID:        e.Actor().ID,
			ActorName:      e.Actor().Name,
			Reason:         e.Reason(),
			Notes:          e.Notes(),
			CreatedAt:      e.CreatedAt(),
		})
	}
	return dto
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func toHistoryEntry(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}
	previous, err := order.ParseStatus(dto.PreviousStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	next, err := order.ParseStatus(dto.NewStatus)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	action, ok := order.ParseAction(dto.Action)
	if !ok {
		action = order.UnknownAction
	}

	return order.NewHistoryEntry(id, previous, next, action,
		order.Actor{ID: dto.ActorID, Name: dto.ActorName}, dto.Reason, dto.Notes, dto.CreatedAt)
}

// toDomain expects dto.History to be loaded in Seq order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	cur, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, cur)
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID:        id,
		Number:    dto.Number,
		Status:    status,
		ProductID: productID,
		Amount:    amount,
		Countries: dto.Countries,
		CreatedAt: dto.CreatedAt,
		CompletedServices: product.Services{
			Apostille:       dto.ApostilleDone,
			Shipping:        dto.ShippingDone,
			POA:             dto.POADone,
			FinancialReport: dto.FinancialReportDone,
		},
		CompletedAt:      dto.CompletedAt,
		RejectionReasons: dto.RejectionReasons,
		Version:          dto.Version,
	}
	if s.SalesID, err = restoreID(dto.SalesID); err != nil {
		return nil, err
	}
	if s.OperationID, err = restoreID(dto.OperationID); err != nil {
		return nil, err
	}
	if s.ManagerID, err = restoreID(dto.ManagerID); err != nil {
		return nil, err
	}

	s.History = make([]order.HistoryEntry, 0, len(dto.History))
	for _, h := range dto.History {
		entry, entryErr := toHistoryEntry(h)
		if entryErr != nil {
			return nil, entryErr
		}
		s.History = append(s.History, entry)
	}

	return order.RestoreOrder(s)
}
