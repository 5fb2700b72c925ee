package commands_test

import (
	"context"
	"errors"
	"testing"

	"provenance/internal/core/application/usecases/commands"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/core/domain/services"
	"provenance/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockProductRepository) GetAllByOwner(ctx context.Context, owner string) ([]*product.Product, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}
func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, event product.HistoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockHistoryRepository) GetByProduct(_ context.Context, _ kernel.UUID) ([]product.HistoryEvent, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockHistoryRepository) DeleteByProduct(ctx context.Context, productID kernel.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockBlockRepository struct{ mock.Mock }

func (m *MockBlockRepository) Add(ctx context.Context, block ledger.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}
func (m *MockBlockRepository) GetAllOrdered(_ context.Context) ([]ledger.Block, error) {
	return nil, errors.New("not implemented in mock")
}

type MockIdentityRepository struct{ mock.Mock }

func (m *MockIdentityRepository) Add(ctx context.Context, aggregate identity.Identity) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockIdentityRepository) Get(ctx context.Context, id kernel.UUID) (identity.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Identity), args.Error(1)
}
func (m *MockIdentityRepository) GetByUsername(ctx context.Context, username string) (identity.Identity, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(identity.Identity), args.Error(1)
}
func (m *MockIdentityRepository) GetFirstByRole(ctx context.Context, role identity.Role) (identity.Identity, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(identity.Identity), args.Error(1)
}
func (m *MockIdentityRepository) GetAllByRole(ctx context.Context, role identity.Role) ([]identity.Identity, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Identity), args.Error(1)
}
func (m *MockIdentityRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUoW satisfies every narrowed unit of work interface in the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}
func (m *MockUoW) BlockRepository() ports.BlockRepository {
	args := m.Called()
	return args.Get(0).(ports.BlockRepository)
}
func (m *MockUoW) IdentityRepository() ports.IdentityRepository {
	args := m.Called()
	return args.Get(0).(ports.IdentityRepository)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockCustodyUoWFactory struct{ mock.Mock }

func (m *MockCustodyUoWFactory) Create() commands.CustodyUoW {
	args := m.Called()
	return args.Get(0).(commands.CustodyUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDirectoryUoWFactory struct{ mock.Mock }

func (m *MockDirectoryUoWFactory) Create() commands.DirectoryUoW {
	args := m.Called()
	return args.Get(0).(commands.DirectoryUoW)
}

type emptyBlockStore struct{}

func (emptyBlockStore) GetAllOrdered(_ context.Context) ([]ledger.Block, error) {
	return nil, nil
}

// newTestLedger returns an initialized ledger holding only the genesis block.
func newTestLedger(t *testing.T) *services.AuditLedger {
	t.Helper()
	l := services.NewAuditLedger()
	require.NoError(t, l.Initialize(context.Background(), emptyBlockStore{}, nil))
	return l
}

func mustIdentity(t *testing.T, username string, role identity.Role) identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(kernel.NewUUID(), username, role)
	require.NoError(t, err)
	return id
}
