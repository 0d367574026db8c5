package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffAssigner_Assign(t *testing.T) {
	assigner := services.NewStaffAssigner()

	t.Run("should assign an eligible staff member", func(t *testing.T) {
		c := newCrew(t)
		o := assignedOrder(t, c)
		other, err := staff.NewStaff(kernel.NewUUID(), "Nadia", staff.Operation, "Ops", staff.Manager)
		require.NoError(t, err)

		require.NoError(t, assigner.Assign(o, order.ManagerParty, other))

		assert.True(t, o.ManagerID().IsEqual(other.ID()))
	})

	t.Run("should refuse an ineligible role", func(t *testing.T) {
		c := newCrew(t)
		o := assignedOrder(t, c)

		err := assigner.Assign(o, order.ManagerParty, c.sales)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.ManagerID().IsEqual(c.manager.ID()))
	})

	t.Run("should refuse the client party", func(t *testing.T) {
		c := newCrew(t)
		o := assignedOrder(t, c)

		err := assigner.Assign(o, order.ClientParty, c.sales)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should validate its inputs", func(t *testing.T) {
		c := newCrew(t)

		assert.ErrorIs(t, assigner.Assign(nil, order.SalesParty, c.sales), order.ErrOrderIsNotConstructed)
		assert.ErrorIs(t, assigner.Assign(assignedOrder(t, c), order.SalesParty, nil), staff.ErrStaffIsNotConstructed)
	})
}
