package cmd

import (
	"context"
	"fmt"

	"provenance/internal/adapters/out/postgres"
	"provenance/internal/core/application/usecases/commands"
	"provenance/internal/core/application/usecases/queries"
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	auditLedger *services.AuditLedger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		auditLedger: services.NewAuditLedger(),
	}
}

// AuditLedger returns the shared in-memory audit chain.
func (c *CompositionRoot) AuditLedger() *services.AuditLedger {
	return c.auditLedger
}

// InitializeAuditLedger loads the persisted chain into memory, writing the
// genesis block on a first run. Must be called once before serving requests.
func (c *CompositionRoot) InitializeAuditLedger(ctx context.Context) error {
	store := c.uowFactory.Create().BlockRepository()

	return c.auditLedger.Initialize(ctx, store, func(ctx context.Context, genesis ledger.Block) error {
		return store.Add(ctx, genesis)
	})
}

// SeedParticipants registers the default participants on an empty database
// so a fresh deployment is immediately usable.
func (c *CompositionRoot) SeedParticipants(ctx context.Context) error {
	var count int64
	if err := c.gormDB.WithContext(ctx).Table("users").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count participants: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := c.uowFactory.Create().IdentityRepository()
	for _, participant := range []struct {
		username string
		role     identity.Role
	}{
		{"acme", identity.RoleManufacturer},
		{"haulage", identity.RoleDistributor},
		{"shop", identity.RoleRetailer},
		{"admin", identity.RoleSuperAdmin},
	} {
		ident, err := identity.NewIdentity(kernel.NewUUID(), participant.username, participant.role)
		if err != nil {
			return fmt.Errorf("failed to build participant %s: %w", participant.username, err)
		}
		if err := repo.Add(ctx, ident); err != nil {
			return fmt.Errorf("failed to seed participant %s: %w", participant.username, err)
		}
	}

	return nil
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateTransitionCustodyCommandHandler() commands.TransitionCustodyCommandHandler {
	var f commands.CustodyUoWFactory = FuncCustodyUoWFactory(func() commands.CustodyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionCustodyCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteProductCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	var f commands.DirectoryUoWFactory = FuncDirectoryUoWFactory(func() commands.DirectoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteUserCommandHandler(f, c.auditLedger)
}

func (c *CompositionRoot) CreateGetChainQueryHandler() queries.GetChainQueryHandler {
	return queries.NewGetChainQueryHandler(c.auditLedger)
}

func (c *CompositionRoot) CreateGetProductQueryHandler() queries.GetProductQueryHandler {
	return queries.NewGetProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductTimelineQueryHandler() queries.GetProductTimelineQueryHandler {
	return queries.NewGetProductTimelineQueryHandler(c.auditLedger)
}

func (c *CompositionRoot) CreateListProductsQueryHandler() queries.ListProductsQueryHandler {
	return queries.NewListProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrderableProductsQueryHandler() queries.ListOrderableProductsQueryHandler {
	return queries.NewListOrderableProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersByRoleQueryHandler() queries.ListUsersByRoleQueryHandler {
	return queries.NewListUsersByRoleQueryHandler(c.gormDB)
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncCustodyUoWFactory func() commands.CustodyUoW

func (f FuncCustodyUoWFactory) Create() commands.CustodyUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDirectoryUoWFactory func() commands.DirectoryUoW

func (f FuncDirectoryUoWFactory) Create() commands.DirectoryUoW {
	return f()
}
