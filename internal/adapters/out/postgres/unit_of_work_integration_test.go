package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "provenance/internal/adapters/out/postgres"
	"provenance/internal/adapters/out/postgres/blockrepo"
	"provenance/internal/adapters/out/postgres/historyrepo"
	"provenance/internal/adapters/out/postgres/identityrepo"
	"provenance/internal/adapters/out/postgres/orderrepo"
	"provenance/internal/adapters/out/postgres/productrepo"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/core/domain/services"
	"provenance/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM-based Unit of Work
// against a real PostgreSQL database, including the invariant that a
// custody change and its audit block commit or roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&historyrepo.HistoryDTO{},
		&blockrepo.BlockDTO{},
		&identityrepo.UserDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products, orders, product_histories, blocks, users").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create_ReturnsIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)

	suite.NotNil(uow1.ProductRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.HistoryRepository())
	suite.NotNil(uow1.BlockRepository())
	suite.NotNil(uow1.IdentityRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin should be a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().Error(uow.Commit(ctx), "commit without active transaction should fail")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Require().Error(uow.Rollback(ctx), "rollback without active transaction should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsProductHistoryAndBlock() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct, event, block := suite.newCustodyChange()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, testProduct))
	suite.Require().NoError(uow.HistoryRepository().Add(ctx, event))
	suite.Require().NoError(uow.BlockRepository().Add(ctx, block))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&productrepo.ProductDTO{}, 1)
	suite.assertCount(&historyrepo.HistoryDTO{}, 1)
	suite.assertCount(&blockrepo.BlockDTO{}, 1)

	events, err := suite.factory.Create().HistoryRepository().GetByProduct(ctx, testProduct.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal(product.Created, events[0].Status())
	suite.Equal("acme", events[0].By())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsProductHistoryAndBlock() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testProduct, event, block := suite.newCustodyChange()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().Add(ctx, testProduct))
	suite.Require().NoError(uow.HistoryRepository().Add(ctx, event))
	suite.Require().NoError(uow.BlockRepository().Add(ctx, block))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&productrepo.ProductDTO{}, 0)
	suite.assertCount(&historyrepo.HistoryDTO{}, 0)
	suite.assertCount(&blockrepo.BlockDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLedger_RoundTripsThroughBlockStore() {
	ctx := context.Background()
	uow := suite.factory.Create()
	store := uow.BlockRepository()

	auditLedger := services.NewAuditLedger()
	err := auditLedger.Initialize(ctx, store, func(ctx context.Context, genesis ledger.Block) error {
		return store.Add(ctx, genesis)
	})
	suite.Require().NoError(err)

	productID := kernel.NewUUID()
	payload := map[string]any{
		"type":       ledger.EventTypeProductCreated,
		"product_id": productID.String(),
		"name":       "widget",
	}
	_, err = auditLedger.Append(ctx, payload, func(ctx context.Context, block ledger.Block) error {
		return store.Add(ctx, block)
	})
	suite.Require().NoError(err)

	// A fresh ledger loaded from the database must carry the same chain
	// and still verify.
	reloaded := services.NewAuditLedger()
	suite.Require().NoError(reloaded.Initialize(ctx, suite.factory.Create().BlockRepository(), nil))

	length, err := reloaded.Length()
	suite.Require().NoError(err)
	suite.Equal(2, length)
	suite.Require().NoError(reloaded.Verify())

	blocks, err := reloaded.Blocks()
	suite.Require().NoError(err)
	suite.Equal(ledger.EventTypeGenesis, blocks[0].EventType())
	suite.Equal(ledger.EventTypeProductCreated, blocks[1].EventType())
	suite.Equal(blocks[0].Hash(), blocks[1].PreviousHash())
	suite.Equal(productID.String(), blocks[1].Data()["product_id"])
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIdentityRepository_UsernameLookups() {
	ctx := context.Background()
	repo := suite.factory.Create().IdentityRepository()

	for _, participant := range []struct {
		username string
		role     identity.Role
	}{
		{"acme", identity.RoleManufacturer},
		{"haulage", identity.RoleDistributor},
		{"shop", identity.RoleRetailer},
	} {
		ident, err := identity.NewIdentity(kernel.NewUUID(), participant.username, participant.role)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, ident))
	}

	byName, err := repo.GetByUsername(ctx, "haulage")
	suite.Require().NoError(err)
	suite.Equal(identity.RoleDistributor, byName.Role())

	first, err := repo.GetFirstByRole(ctx, identity.RoleRetailer)
	suite.Require().NoError(err)
	suite.Equal("shop", first.Username())

	distributors, err := repo.GetAllByRole(ctx, identity.RoleDistributor)
	suite.Require().NoError(err)
	suite.Len(distributors, 1)
}

// newCustodyChange builds the three records a product registration writes:
// the aggregate, its first history event, and the matching ledger block.
func (suite *UnitOfWorkIntegrationTestSuite) newCustodyChange() (
	*product.Product, product.HistoryEvent, ledger.Block,
) {
	creator, err := identity.NewIdentity(kernel.NewUUID(), "acme", identity.RoleManufacturer)
	suite.Require().NoError(err)

	now := time.Now()
	testProduct, err := product.NewProduct(kernel.NewUUID(), "widget", "a test product", creator, now)
	suite.Require().NoError(err)

	event, err := product.NewHistoryEvent(testProduct.ID(), product.Created, "acme", now, nil)
	suite.Require().NoError(err)

	genesis, err := ledger.NewGenesisBlock(float64(now.Unix()))
	suite.Require().NoError(err)

	block, err := ledger.NewBlock(1, float64(now.Unix()), map[string]any{
		"type":       ledger.EventTypeProductCreated,
		"product_id": testProduct.ID().String(),
	}, genesis.Hash())
	suite.Require().NoError(err)

	return testProduct, event, block
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int) {
	var count int64
	err := suite.db.Model(model).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
