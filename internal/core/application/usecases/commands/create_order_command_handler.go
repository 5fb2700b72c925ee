package commands

import (
	"context"
	"fmt"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/core/domain/services"
	"provenance/internal/pkg/errs"
)

// CreateOrderResponse carries the placed order together with the audit block
// that recorded it.
type CreateOrderResponse struct {
	Order *order.Order
	Block ledger.Block
}

// CreateOrderCommandHandler handles the business logic for placing a
// bottom-up order. Retailers order from distributors, distributors from
// manufacturers; the recipient is either named explicitly or resolved as any
// identity of the expected upstream role.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLedger *services.AuditLedger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	auditLedger *services.AuditLedger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the order placement command. The product must exist and
// the recipient must hold exactly the actor's upstream role.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	if err := identity.Authorize(cmd.Actor(), identity.RoleRetailer, identity.RoleDistributor); err != nil {
		return CreateOrderResponse{}, err
	}

	upstream, ok := order.UpstreamRole(cmd.Actor().Role())
	if !ok {
		return CreateOrderResponse{}, errs.NewAuthorizationError(cmd.Actor().Username(),
			fmt.Sprintf("role '%s' cannot place orders", cmd.Actor().Role()))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ProductRepository().Get(ctx, cmd.ProductID()); err != nil {
		return CreateOrderResponse{}, err
	}

	recipient, err := h.resolveRecipient(ctx, uow, cmd, upstream)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.ProductID(),
		cmd.Actor().Username(), recipient.Username(), cmd.Message(), time.Now())
	if err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return CreateOrderResponse{}, err
	}

	payload := map[string]any{
		"type":       ledger.EventTypeOrderCreated,
		"order_id":   newOrder.ID().String(),
		"product_id": newOrder.ProductID().String(),
		"from_user":  newOrder.FromUser(),
		"to_user":    newOrder.ToUser(),
	}

	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	return CreateOrderResponse{Order: newOrder, Block: block}, nil
}

// resolveRecipient finds who the order is addressed to: the explicitly named
// identity when one was given (it must hold the upstream role), otherwise the
// first registered identity of that role.
func (h *CreateOrderCommandHandler) resolveRecipient(
	ctx context.Context,
	uow OrderUoW,
	cmd CreateOrderCommand,
	upstream identity.Role,
) (identity.Identity, error) {
	if cmd.ToUsername() == "" {
		return uow.IdentityRepository().GetFirstByRole(ctx, upstream)
	}

	recipient, err := uow.IdentityRepository().GetByUsername(ctx, cmd.ToUsername())
	if err != nil {
		return identity.Identity{}, err
	}

	if recipient.Role() != upstream {
		return identity.Identity{}, errs.NewValueIsInvalidErrorWithCause("to_username",
			fmt.Errorf("'%s' is a '%s', orders from a '%s' go to a '%s'",
				recipient.Username(), recipient.Role(), cmd.Actor().Role(), upstream))
	}

	return recipient, nil
}
