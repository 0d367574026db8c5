package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"

	"github.com/stretchr/testify/require"
)

// 2026-03-02 09:00 UTC is a Monday.
var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type crew struct {
	sales, operation, manager *staff.Staff
}

func newCrew(t *testing.T) crew {
	t.Helper()
	s, err := staff.NewStaff(kernel.NewUUID(), "Sara", staff.Sales, "Sales")
	require.NoError(t, err)
	o, err := staff.NewStaff(kernel.NewUUID(), "Omar", staff.Operation, "Operations")
	require.NoError(t, err)
	m, err := staff.NewStaff(kernel.NewUUID(), "Mona", staff.Manager, "Operations")
	require.NoError(t, err)
	return crew{sales: s, operation: o, manager: m}
}

func actorOf(s *staff.Staff) order.Actor {
	return order.Actor{ID: s.ID().String(), Name: s.Name()}
}

func usd(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func assignedOrder(t *testing.T, c crew) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(), usd(t, "2500"), []string{"AE"}, created)
	require.NoError(t, err)
	require.NoError(t, o.Submit(created))
	require.NoError(t, o.Assign(order.SalesParty, c.sales.ID()))
	require.NoError(t, o.Assign(order.OperationParty, c.operation.ID()))
	require.NoError(t, o.Assign(order.ManagerParty, c.manager.ID()))
	o.ClearDomainEvents()
	return o
}

// walk accepts stage by stage, one hour apart, until the order reaches target.
func walk(t *testing.T, o *order.Order, c crew, target order.Status, start time.Time) time.Time {
	t.Helper()
	at := start
	for o.Status() != target {
		at = at.Add(time.Hour)
		var actor order.Actor
		switch order.ResponsibleParty(o.Status()) {
		case order.SalesParty:
			actor = actorOf(c.sales)
		case order.OperationParty:
			actor = actorOf(c.operation)
		case order.ManagerParty:
			actor = actorOf(c.manager)
		default:
			actor = order.Actor{ID: order.ClientActorID}
		}
		require.NoError(t, o.Accept(actor, "", product.Services{}, at))
	}
	return at
}

func lastEvent(t *testing.T, o *order.Order) order.Event {
	t.Helper()
	events := o.DomainEvents()
	require.NotEmpty(t, events)
	return events[len(events)-1]
}
