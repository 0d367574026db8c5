package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	StageAdvancedEvent  = "order.stage_advanced"
	OrderRejectedEvent  = "order.rejected"
	OrderCompletedEvent = "order.completed"
)

// Event is recorded by the aggregate for every transition. EntryID is the id of
// the history entry that caused it and serves as the idempotency key downstream.
type Event interface {
	Name() string
	OrderID() kernel.UUID
	EntryID() kernel.UUID
	OccurredAt() time.Time
}

type eventBase struct {
	orderID    kernel.UUID
	entryID    kernel.UUID
	occurredAt time.Time
}

func (e eventBase) OrderID() kernel.UUID  { return e.orderID }
func (e eventBase) EntryID() kernel.UUID  { return e.entryID }
func (e eventBase) OccurredAt() time.Time { return e.occurredAt }

// StageAdvanced is recorded when the order moves forward without completing,
// including resubmits and intake.
type StageAdvanced struct {
	eventBase
	From    Status
	To      Status
	ActorID string
}

func (StageAdvanced) Name() string { return StageAdvancedEvent }

// OrderRejected carries the staff member whose stage was rejected, if any.
type OrderRejected struct {
	eventBase
	From              Status
	To                Status
	ActorID           string
	Reason            string
	Rework            bool
	AttributedStaffID *kernel.UUID
}

func (OrderRejected) Name() string { return OrderRejectedEvent }

type OrderCompleted struct {
	eventBase
	ProductID        kernel.UUID
	SalesStaffID     *kernel.UUID
	OperationStaffID *kernel.UUID
	Amount           kernel.Money
	CreatedAt        time.Time
	CompletedAt      time.Time
}

func (OrderCompleted) Name() string { return OrderCompletedEvent }
