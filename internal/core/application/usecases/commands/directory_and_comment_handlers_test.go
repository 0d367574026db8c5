package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/staff"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterStaffCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	f.expectTx(true)
	f.uow.staff.On("Add", mock.Anything, mock.AnythingOfType("*staff.Staff")).Return(nil).Once()

	cmd, err := commands.NewRegisterStaffCommand(kernel.NewUUID(), "Omar", staff.Operation, "Operations", staff.Manager)
	require.NoError(t, err)

	h := commands.NewRegisterStaffCommandHandler(f.factory)
	member, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, member.CanHandle(staff.Manager))
	f.assertExpectations(t)
}

func TestNewRegisterStaffCommand_NameRequired(t *testing.T) {
	_, err := commands.NewRegisterStaffCommand(kernel.NewUUID(), " ", staff.Sales, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRegisterProductCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newFixture()
	f.expectTx(true)
	f.uow.products.On("Add", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil).Once()

	cmd, err := commands.NewRegisterProductCommand(kernel.NewUUID(), "Freezone LLC", product.Services{Apostille: true})
	require.NoError(t, err)

	h := commands.NewRegisterProductCommandHandler(f.factory)
	p, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, p.HasApostille())
	f.assertExpectations(t)
}

func TestAddCommentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	c := newCrew(t)
	p := newProduct(t, product.Services{})
	o := assignedOrder(t, c, p)
	historyLen := o.HistoryLen()

	f := newFixture()
	f.expectTx(true)
	f.uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	f.uow.comments.On("Add", mock.Anything, mock.AnythingOfType("*comment.Comment")).Return(nil).Once()

	cmd, err := commands.NewAddCommentCommand(kernel.NewUUID(), o.ID(), c.sales.ID().String(), "Sara", "client called")
	require.NoError(t, err)

	h := commands.NewAddCommentCommandHandler(f.factory, fixedClock{created})
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "client called", got.Body())
	assert.True(t, got.OrderID().IsEqual(o.ID()))
	assert.Equal(t, historyLen, o.HistoryLen())
	f.assertExpectations(t)
}

func TestAddCommentCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()

	f := newFixture()
	f.expectTx(false)
	f.uow.orders.On("Get", mock.Anything, orderID).Return(nil, errs.NewObjectNotFoundError("orderID", orderID)).Once()

	cmd, err := commands.NewAddCommentCommand(kernel.NewUUID(), orderID, "someone", "", "hello")
	require.NoError(t, err)

	h := commands.NewAddCommentCommandHandler(f.factory, fixedClock{created})
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assertExpectations(t)
}

func TestNewAddCommentCommand_Validation(t *testing.T) {
	_, err := commands.NewAddCommentCommand(kernel.NewUUID(), kernel.NewUUID(), "", "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
