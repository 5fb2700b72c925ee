package commands

import (
	"context"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/services"
	"provenance/internal/pkg/errs"
)

// DeleteUserResponse carries the audit block that recorded the removal and
// the identifiers of any cascade-deleted products.
type DeleteUserResponse struct {
	Block                  ledger.Block
	CascadeDeletedProducts []string
}

// DeleteUserCommandHandler handles admin-only participant removal. Products
// owned by the removed participant are purged with their histories; every
// removal is recorded on the audit chain.
type DeleteUserCommandHandler struct {
	uowFactory  DirectoryUoWFactory
	auditLedger *services.AuditLedger
}

// NewDeleteUserCommandHandler creates a handler for participant removal.
func NewDeleteUserCommandHandler(
	uowFactory DirectoryUoWFactory,
	auditLedger *services.AuditLedger,
) DeleteUserCommandHandler {
	return DeleteUserCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the participant removal command. Admins cannot remove
// themselves.
func (h *DeleteUserCommandHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (DeleteUserResponse, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteUserResponse{}, err
	}

	if err := identity.Authorize(cmd.Actor(), identity.RoleSuperAdmin); err != nil {
		return DeleteUserResponse{}, err
	}

	if cmd.Username() == cmd.Actor().Username() {
		return DeleteUserResponse{}, errs.NewAuthorizationError(cmd.Actor().Username(),
			"admins cannot remove themselves")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DeleteUserResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subject, err := uow.IdentityRepository().GetByUsername(ctx, cmd.Username())
	if err != nil {
		return DeleteUserResponse{}, err
	}

	owned, err := uow.ProductRepository().GetAllByOwner(ctx, subject.Username())
	if err != nil {
		return DeleteUserResponse{}, err
	}

	deletedProducts := make([]string, 0, len(owned))
	for _, aggregate := range owned {
		if err = uow.HistoryRepository().DeleteByProduct(ctx, aggregate.ID()); err != nil {
			return DeleteUserResponse{}, err
		}
		if err = uow.ProductRepository().Delete(ctx, aggregate.ID()); err != nil {
			return DeleteUserResponse{}, err
		}
		deletedProducts = append(deletedProducts, aggregate.ID().String())
	}

	if err = uow.IdentityRepository().Delete(ctx, subject.UserID()); err != nil {
		return DeleteUserResponse{}, err
	}

	payload := map[string]any{
		"type":                     ledger.EventTypeUserDeleted,
		"username":                 subject.Username(),
		"role":                     subject.Role().String(),
		"by":                       cmd.Actor().Username(),
		"cascade_deleted_products": deletedProducts,
	}

	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return DeleteUserResponse{}, err
	}

	return DeleteUserResponse{Block: block, CascadeDeletedProducts: deletedProducts}, nil
}
