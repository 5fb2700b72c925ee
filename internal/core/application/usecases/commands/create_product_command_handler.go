package commands

import (
	"context"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/core/domain/services"
)

// CreateProductResponse carries the registered product together with the
// audit block that recorded the registration.
type CreateProductResponse struct {
	Product *product.Product
	Block   ledger.Block
}

// CreateProductCommandHandler handles the business logic for product
// registration: manufacturers introduce products into the chain, becoming
// owner and first custodian in one step.
type CreateProductCommandHandler struct {
	uowFactory  ProductUoWFactory
	auditLedger *services.AuditLedger
}

// NewCreateProductCommandHandler creates a handler for product registration.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory,
	auditLedger *services.AuditLedger,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the product registration command. The product row, its
// first history event and the audit block are written in one transaction.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (CreateProductResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateProductResponse{}, err
	}

	if err := identity.Authorize(cmd.Actor(), identity.RoleManufacturer); err != nil {
		return CreateProductResponse{}, err
	}

	now := time.Now()
	newProduct, err := product.NewProduct(cmd.ProductID(), cmd.Name(), cmd.Description(), cmd.Actor(), now)
	if err != nil {
		return CreateProductResponse{}, err
	}

	event, err := product.NewHistoryEvent(newProduct.ID(), newProduct.Status(), cmd.Actor().Username(), now, cmd.Location())
	if err != nil {
		return CreateProductResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateProductResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, newProduct); err != nil {
		return CreateProductResponse{}, err
	}

	if err = uow.HistoryRepository().Add(ctx, event); err != nil {
		return CreateProductResponse{}, err
	}

	payload := map[string]any{
		"type":              ledger.EventTypeProductCreated,
		"product_id":        newProduct.ID().String(),
		"name":              newProduct.Name(),
		"owner":             newProduct.Owner(),
		"initial_custodian": newProduct.Custodian(),
	}
	if cmd.Location() != nil {
		payload["location"] = cmd.Location().String()
	}

	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return CreateProductResponse{}, err
	}

	return CreateProductResponse{Product: newProduct, Block: block}, nil
}
