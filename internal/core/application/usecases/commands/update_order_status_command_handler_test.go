package commands_test

import (
	"testing"
	"time"

	"provenance/internal/core/application/usecases/commands"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStoredOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(),
		"shop", "haulage", "need stock", status, time.Now(), time.Now())
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_AcceptEmitsHint(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "haulage", identity.RoleDistributor)
	stored := newStoredOrder(t, order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Accepted)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	blockRepo := new(MockBlockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("BlockRepository").Return(blockRepo).Once(),
		blockRepo.On("Add", mock.Anything, mock.AnythingOfType("ledger.Block")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, newTestLedger(t))
	response, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, response.Order.Status())
	require.NotNil(t, response.Block)
	assert.Equal(t, ledger.EventTypeOrderStatusUpdated, response.Block.EventType())
	require.NotNil(t, response.Hint, "accepting must emit the hand-off hint")
	assert.Equal(t, order.NextActionCustodianTransfer, response.Hint.NextAction)
	assert.Equal(t, "shop", response.Hint.Prefill.TransferToUsername)
	assert.True(t, response.Hint.Prefill.ProductID.IsEqual(stored.ProductID()))
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_RejectHasNoHint(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "haulage", identity.RoleDistributor)
	stored := newStoredOrder(t, order.Pending)
	cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Rejected)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	blockRepo := new(MockBlockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("BlockRepository").Return(blockRepo).Once(),
		blockRepo.On("Add", mock.Anything, mock.AnythingOfType("ledger.Block")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, newTestLedger(t))
	response, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Rejected, response.Order.Status())
	assert.Nil(t, response.Hint)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_FulfilledTwiceIsNoOp(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "haulage", identity.RoleDistributor)
	stored := newStoredOrder(t, order.Fulfilled)
	cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Fulfilled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	auditLedger := newTestLedger(t)
	h := commands.NewUpdateOrderStatusCommandHandler(factory, auditLedger)
	response, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, response.Block, "no-op must not write a block")
	assert.Nil(t, response.Hint)
	length, err := auditLedger.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, length)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_OnlyRecipientDecides(t *testing.T) {
	ctx := t.Context()
	stored := newStoredOrder(t, order.Pending)

	t.Run("requester cannot decide their own order", func(t *testing.T) {
		actor := mustIdentity(t, "shop", identity.RoleRetailer)
		cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Accepted)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateOrderStatusCommandHandler(factory, newTestLedger(t))
		_, err = h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrAccessDenied)
		assert.Equal(t, order.Pending, stored.Status())
	})

	t.Run("admin can decide any order", func(t *testing.T) {
		actor := mustIdentity(t, "root", identity.RoleSuperAdmin)
		cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Rejected)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		blockRepo := new(MockBlockRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
			uow.On("BlockRepository").Return(blockRepo).Once(),
			blockRepo.On("Add", mock.Anything, mock.AnythingOfType("ledger.Block")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewUpdateOrderStatusCommandHandler(factory, newTestLedger(t))
		response, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.Rejected, response.Order.Status())
	})
}

func TestUpdateOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "haulage", identity.RoleDistributor)
	stored := newStoredOrder(t, order.Rejected)
	cmd, err := commands.NewUpdateOrderStatusCommand(stored.ID(), actor, order.Fulfilled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, newTestLedger(t))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertExpectations(t)
}
