package order_test

import (
	"slices"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type crew struct {
	sales, operation, manager kernel.UUID
}

func (c crew) salesActor() order.Actor { return order.Actor{ID: c.sales.String(), Name: "Sara"} }
func (c crew) operationActor() order.Actor {
	return order.Actor{ID: c.operation.String(), Name: "Omar"}
}
func (c crew) managerActor() order.Actor { return order.Actor{ID: c.manager.String(), Name: "Mona"} }

func clientActor() order.Actor { return order.Actor{ID: order.ClientActorID, Name: "Client"} }

func newCrew() crew {
	return crew{sales: kernel.NewUUID(), operation: kernel.NewUUID(), manager: kernel.NewUUID()}
}

func newMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

func submittedOrder(t *testing.T, c crew) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", kernel.NewUUID(), newMoney(t, "5000"), []string{"AE", " AE", "GB"}, t0)
	require.NoError(t, err)
	require.NoError(t, o.Submit(t0))
	require.NoError(t, o.Assign(order.SalesParty, c.sales))
	require.NoError(t, o.Assign(order.OperationParty, c.operation))
	require.NoError(t, o.Assign(order.ManagerParty, c.manager))
	o.ClearDomainEvents()
	return o
}

// advance accepts the order through each stage up to target.
func advance(t *testing.T, o *order.Order, c crew, target order.Status) time.Time {
	t.Helper()
	at := t0
	for o.Status() != target {
		at = at.Add(time.Hour)
		var actor order.Actor
		switch order.ResponsibleParty(o.Status()) {
		case order.SalesParty:
			actor = c.salesActor()
		case order.OperationParty:
			actor = c.operationActor()
		case order.ManagerParty:
			actor = c.managerActor()
		case order.ClientParty:
			actor = clientActor()
		default:
			t.Fatalf("no party for %s", o.Status())
		}
		require.NoError(t, o.Accept(actor, "", product.Services{}, at))
	}
	o.ClearDomainEvents()
	return at
}

func TestNewOrder(t *testing.T) {
	t.Run("should create an order in status new", func(t *testing.T) {
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, " ORD-7 ", kernel.NewUUID(), newMoney(t, "100"), []string{"AE", "", "AE"}, t0)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "ORD-7", o.Number())
		assert.Equal(t, order.New, o.Status())
		assert.Equal(t, []string{"AE"}, o.Countries())
		assert.Equal(t, 0, o.HistoryLen())
		assert.Equal(t, 0, o.Version())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "", kernel.UUID{}, kernel.Money{}, nil, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrNumberIsRequired)
		assert.ErrorIs(t, err, kernel.ErrMoneyIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(), newMoney(t, "-1"), nil, t0)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("nil order is invalid", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Submit(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(), newMoney(t, "1"), nil, t0)
	require.NoError(t, err)

	require.NoError(t, o.Submit(t0))

	assert.Equal(t, order.PendingSalesReview, o.Status())
	entries := slices.Collect(o.History())
	require.Len(t, entries, 1)
	assert.Equal(t, order.SystemTransition, entries[0].Action())
	assert.Equal(t, order.SystemActorID, entries[0].Actor().ID)
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, order.StageAdvancedEvent, o.DomainEvents()[0].Name())

	assert.ErrorIs(t, o.Submit(t0), errs.ErrInvalidTransition)
}

func TestOrder_HappyPath(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)
	required := product.Services{Apostille: true, Shipping: true}

	at := advance(t, o, c, order.ShippingPreparation)
	completedAt := at.Add(time.Hour)
	require.NoError(t, o.Accept(c.operationActor(), "dispatched", required, completedAt))

	assert.Equal(t, order.Completed, o.Status())
	require.NotNil(t, o.CompletedAt())
	assert.True(t, o.CompletedAt().Equal(completedAt))
	assert.Equal(t, required, o.CompletedServices())

	events := o.DomainEvents()
	require.Len(t, events, 1)
	completed, ok := events[0].(order.OrderCompleted)
	require.True(t, ok)
	assert.True(t, completed.SalesStaffID.IsEqual(c.sales))
	assert.True(t, completed.OperationStaffID.IsEqual(c.operation))
	assert.True(t, completed.Amount.IsEqual(o.Amount()))

	entries := slices.Collect(o.History())
	assert.Len(t, entries, 6)
	for i := 0; i < len(entries)-1; i++ {
		assert.Equal(t, entries[i].NewStatus(), entries[i+1].PreviousStatus())
		assert.False(t, entries[i+1].CreatedAt().Before(entries[i].CreatedAt()))
	}
	last := entries[len(entries)-1]
	assert.Equal(t, "dispatched", last.Notes())
	assert.True(t, completed.EntryID().IsEqual(last.ID()))

	t.Run("second accept on a completed order is an invalid transition", func(t *testing.T) {
		err := o.Accept(c.operationActor(), "", required, completedAt.Add(time.Minute))

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, 6, o.HistoryLen())
	})
}

func TestOrder_AllFlagsFalseStillShips(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)

	advance(t, o, c, order.AwaitingClientAcceptance)
	require.NoError(t, o.Accept(clientActor(), "", product.Services{}, t0.Add(24*time.Hour)))

	assert.Equal(t, order.ShippingPreparation, o.Status())
	assert.Equal(t, product.Services{}, o.CompletedServices())
}

func TestOrder_PermissionDenied(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)
	before := slices.Collect(o.History())

	tests := []struct {
		name string
		act  func() error
	}{
		{"operation accepting sales review", func() error {
			return o.Accept(c.operationActor(), "", product.Services{}, t0.Add(time.Hour))
		}},
		{"client rejecting sales review", func() error {
			return o.Reject(clientActor(), "no", t0.Add(time.Hour))
		}},
		{"stranger accepting", func() error {
			return o.Accept(order.Actor{ID: kernel.NewUUID().String()}, "", product.Services{}, t0.Add(time.Hour))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.act()

			var denied *errs.PermissionDeniedError
			require.ErrorAs(t, err, &denied)
			assert.Equal(t, "pending_sales_review", denied.Status)
			assert.Equal(t, order.PendingSalesReview, o.Status())
			assert.Equal(t, before, slices.Collect(o.History()))
			assert.Empty(t, o.DomainEvents())
		})
	}
}

func TestOrder_UnassignedStageIsDenied(t *testing.T) {
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(), newMoney(t, "1"), nil, t0)
	require.NoError(t, err)
	require.NoError(t, o.Submit(t0))

	err = o.Accept(order.Actor{ID: kernel.NewUUID().String()}, "", product.Services{}, t0)

	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, "", o.ResponsibleID())
}

func TestOrder_InvalidTransitionBeforePermission(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)
	advance(t, o, c, order.ShippingPreparation)

	err := o.Reject(order.Actor{ID: "someone-else"}, "late", t0.Add(48*time.Hour))

	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestOrder_Reject(t *testing.T) {
	t.Run("should require a reason", func(t *testing.T) {
		c := newCrew()
		o := submittedOrder(t, c)

		err := o.Reject(c.salesActor(), "   ", t0.Add(time.Hour))

		assert.ErrorIs(t, err, order.ErrReasonIsRequired)
		assert.True(t, errs.IsValidation(err))
		assert.Equal(t, order.PendingSalesReview, o.Status())
	})

	t.Run("sales rejection is terminal until resubmit and blames nobody", func(t *testing.T) {
		c := newCrew()
		o := submittedOrder(t, c)

		require.NoError(t, o.Reject(c.salesActor(), " missing passport ", t0.Add(time.Hour)))

		assert.Equal(t, order.RejectedBySales, o.Status())
		assert.Equal(t, []string{"missing passport"}, o.RejectionReasons())
		rejected := o.DomainEvents()[0].(order.OrderRejected)
		assert.Nil(t, rejected.AttributedStaffID)
		assert.False(t, rejected.Rework)

		err := o.Accept(c.salesActor(), "", product.Services{}, t0.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("operation rejection blames sales", func(t *testing.T) {
		c := newCrew()
		o := submittedOrder(t, c)
		at := advance(t, o, c, order.PendingOperation)

		require.NoError(t, o.Reject(c.operationActor(), "wrong jurisdiction", at.Add(time.Hour)))

		assert.Equal(t, order.RejectedByOperation, o.Status())
		rejected := o.DomainEvents()[0].(order.OrderRejected)
		require.NotNil(t, rejected.AttributedStaffID)
		assert.True(t, rejected.AttributedStaffID.IsEqual(c.sales))
	})

	t.Run("manager rejection is rework for operation", func(t *testing.T) {
		c := newCrew()
		o := submittedOrder(t, c)
		at := advance(t, o, c, order.PendingOperationManagerReview)

		require.NoError(t, o.Reject(c.managerActor(), "fix articles", at.Add(time.Hour)))

		assert.Equal(t, order.PendingOperation, o.Status())
		rejected := o.DomainEvents()[0].(order.OrderRejected)
		assert.True(t, rejected.Rework)
		assert.True(t, rejected.AttributedStaffID.IsEqual(c.operation))
	})

	t.Run("client rejection is rework for the manager", func(t *testing.T) {
		c := newCrew()
		o := submittedOrder(t, c)
		at := advance(t, o, c, order.AwaitingClientAcceptance)

		require.NoError(t, o.Reject(clientActor(), "typo in name", at.Add(time.Hour)))

		assert.Equal(t, order.PendingOperationManagerReview, o.Status())
		rejected := o.DomainEvents()[0].(order.OrderRejected)
		assert.True(t, rejected.AttributedStaffID.IsEqual(c.manager))
	})
}

func TestOrder_Resubmit(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)
	require.NoError(t, o.Reject(c.salesActor(), "incomplete", t0.Add(time.Hour)))
	o.ClearDomainEvents()

	t.Run("only sales may resubmit", func(t *testing.T) {
		err := o.Resubmit(c.operationActor(), "", t0.Add(2*time.Hour))

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("should return the order to sales review", func(t *testing.T) {
		require.NoError(t, o.Resubmit(c.salesActor(), "docs attached", t0.Add(2*time.Hour)))

		assert.Equal(t, order.PendingSalesReview, o.Status())
		require.Len(t, o.DomainEvents(), 1)
		assert.Equal(t, order.StageAdvancedEvent, o.DomainEvents()[0].Name())
	})

	t.Run("resubmit from an active stage is invalid", func(t *testing.T) {
		err := o.Resubmit(c.salesActor(), "", t0.Add(3*time.Hour))

		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Assign(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)

	assert.ErrorIs(t, o.Assign(order.ClientParty, kernel.NewUUID()), errs.ErrValueIsInvalid)
	assert.Equal(t, c.sales.String(), o.ResponsibleID())

	advance(t, o, c, order.Completed)
	assert.ErrorIs(t, o.Assign(order.SalesParty, kernel.NewUUID()), errs.ErrInvalidTransition)
}

func TestRestoreOrder(t *testing.T) {
	c := newCrew()
	o := submittedOrder(t, c)
	advance(t, o, c, order.PendingOperation)

	snapshot := order.Snapshot{
		ID:          o.ID(),
		Number:      o.Number(),
		Status:      o.Status(),
		ProductID:   o.ProductID(),
		Amount:      o.Amount(),
		Countries:   o.Countries(),
		CreatedAt:   o.CreatedAt(),
		SalesID:     o.SalesID(),
		OperationID: o.OperationID(),
		ManagerID:   o.ManagerID(),
		History:     slices.Collect(o.History()),
		Version:     4,
	}

	t.Run("should restore a consistent snapshot", func(t *testing.T) {
		restored, err := order.RestoreOrder(snapshot)

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, 4, restored.Version())
		assert.Equal(t, o.HistoryLen(), restored.HistoryLen())
		assert.Empty(t, restored.DomainEvents())

		restored.AdvanceVersion()
		assert.Equal(t, 5, restored.Version())
	})

	t.Run("should rebuild the order from its own snapshot", func(t *testing.T) {
		restored, err := order.RestoreOrder(o.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, o.Snapshot(), restored.Snapshot())
	})

	t.Run("should refuse a status that disagrees with the history", func(t *testing.T) {
		broken := snapshot
		broken.Status = order.Completed

		_, err := order.RestoreOrder(broken)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should refuse a negative version", func(t *testing.T) {
		broken := snapshot
		broken.Version = -1

		_, err := order.RestoreOrder(broken)

		assert.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	})
}
