package commands_test

import (
	"testing"
	"time"

	"provenance/internal/core/application/usecases/commands"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDistributorHeldProduct(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.RestoreProduct(kernel.NewUUID(), "Widget",
		"acme", "haulage", "", product.DeliveredToRetailer, time.Now())
	require.NoError(t, err)
	return p
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "shop", identity.RoleRetailer)
	recipient := mustIdentity(t, "haulage", identity.RoleDistributor)
	stored := newDistributorHeldProduct(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), stored.ID(), actor, "haulage", "need stock")
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	identityRepo := new(MockIdentityRepository)
	blockRepo := new(MockBlockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("IdentityRepository").Return(identityRepo).Once(),
		identityRepo.On("GetByUsername", mock.Anything, "haulage").Return(recipient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("BlockRepository").Return(blockRepo).Once(),
		blockRepo.On("Add", mock.Anything, mock.AnythingOfType("ledger.Block")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newTestLedger(t))
	response, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, response.Order.Status())
	assert.Equal(t, "shop", response.Order.FromUser())
	assert.Equal(t, "haulage", response.Order.ToUser())
	assert.Equal(t, ledger.EventTypeOrderCreated, response.Block.EventType())
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ResolvesAnyUpstreamIdentity(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "haulage", identity.RoleDistributor)
	recipient := mustIdentity(t, "acme", identity.RoleManufacturer)
	stored := newDistributorHeldProduct(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), stored.ID(), actor, "", "")
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	identityRepo := new(MockIdentityRepository)
	blockRepo := new(MockBlockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("IdentityRepository").Return(identityRepo).Once(),
		identityRepo.On("GetFirstByRole", mock.Anything, identity.RoleManufacturer).Return(recipient, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("BlockRepository").Return(blockRepo).Once(),
		blockRepo.On("Add", mock.Anything, mock.AnythingOfType("ledger.Block")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newTestLedger(t))
	response, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "acme", response.Order.ToUser())
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_WrongRoleRecipient(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "shop", identity.RoleRetailer)
	recipient := mustIdentity(t, "acme", identity.RoleManufacturer)
	stored := newDistributorHeldProduct(t)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), stored.ID(), actor, "acme", "")
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	identityRepo := new(MockIdentityRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, stored.ID()).Return(stored, nil).Once(),
		uow.On("IdentityRepository").Return(identityRepo).Once(),
		identityRepo.On("GetByUsername", mock.Anything, "acme").Return(recipient, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newTestLedger(t))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ManufacturerCannotOrder(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "acme", identity.RoleManufacturer)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), actor, "", "")
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, newTestLedger(t))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_MissingProduct(t *testing.T) {
	ctx := t.Context()
	actor := mustIdentity(t, "shop", identity.RoleRetailer)
	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), productID, actor, "", "")
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", mock.Anything, productID).
			Return(nil, errs.NewObjectNotFoundError("productId", productID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, newTestLedger(t))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}
