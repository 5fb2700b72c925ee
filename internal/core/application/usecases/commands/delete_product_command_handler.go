package commands

import (
	"context"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/services"
)

// DeleteProductResponse carries the audit block that recorded the removal.
type DeleteProductResponse struct {
	Block ledger.Block
}

// DeleteProductCommandHandler handles admin-only product removal. The product
// row and its history events are purged together; the audit chain keeps the
// removal on record, so the product's past is never silently erased.
type DeleteProductCommandHandler struct {
	uowFactory  ProductUoWFactory
	auditLedger *services.AuditLedger
}

// NewDeleteProductCommandHandler creates a handler for product removal.
func NewDeleteProductCommandHandler(
	uowFactory ProductUoWFactory,
	auditLedger *services.AuditLedger,
) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the product removal command.
func (h *DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (DeleteProductResponse, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteProductResponse{}, err
	}

	if err := identity.Authorize(cmd.Actor(), identity.RoleSuperAdmin); err != nil {
		return DeleteProductResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeleteProductResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return DeleteProductResponse{}, err
	}

	if err = uow.HistoryRepository().DeleteByProduct(ctx, aggregate.ID()); err != nil {
		return DeleteProductResponse{}, err
	}

	if err = uow.ProductRepository().Delete(ctx, aggregate.ID()); err != nil {
		return DeleteProductResponse{}, err
	}

	payload := map[string]any{
		"type":       ledger.EventTypeProductDeleted,
		"product_id": aggregate.ID().String(),
		"name":       aggregate.Name(),
		"by":         cmd.Actor().Username(),
	}

	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return DeleteProductResponse{}, err
	}

	return DeleteProductResponse{Block: block}, nil
}
