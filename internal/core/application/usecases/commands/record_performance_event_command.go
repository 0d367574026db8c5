package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/performance"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordPerformanceEventCommandIsNotConstructed = errors.New(
	"RecordPerformanceEventCommand must be created via NewRecordPerformanceEventCommand constructor",
)

// RecordPerformanceEventCommand applies a manual score change. key makes the
// call idempotent; an empty key gets a fresh one, so such a call always applies.
type RecordPerformanceEventCommand struct {
	staffID   kernel.UUID
	eventType performance.EventType
	orderID   *kernel.UUID
	key       string

	guard guard.ConstructorGuard
}

func NewRecordPerformanceEventCommand(
	staffID kernel.UUID,
	eventType performance.EventType,
	orderID *kernel.UUID,
	key string,
) (RecordPerformanceEventCommand, error) {
	var typeErr, orderErr error
	if eventType != performance.EarlyCompletion && eventType != performance.Rejection {
		typeErr = errs.NewValueIsInvalidError("performance event type")
	}
	if orderID != nil {
		orderErr = orderID.Validate()
	}
	if err := errors.Join(staffID.Validate(), typeErr, orderErr); err != nil {
		return RecordPerformanceEventCommand{}, err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = kernel.NewUUID().String()
	}

	cmd := RecordPerformanceEventCommand{
		staffID:   staffID,
		eventType: eventType,
		key:       key,
		guard:     guard.NewConstructorGuard(),
	}
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}
	return cmd, nil
}

func (c RecordPerformanceEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordPerformanceEventCommandIsNotConstructed)
}

func (c RecordPerformanceEventCommand) StaffID() kernel.UUID             { return c.staffID }
func (c RecordPerformanceEventCommand) EventType() performance.EventType { return c.eventType }
func (c RecordPerformanceEventCommand) OrderID() *kernel.UUID            { return c.orderID }
func (c RecordPerformanceEventCommand) Key() string                      { return c.key }
