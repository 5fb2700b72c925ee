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

// UpdateOrderStatusResponse carries the decided order, the audit block that
// recorded the decision (nil for a no-op retransition) and, on acceptance,
// the advisory hand-off hint.
type UpdateOrderStatusResponse struct {
	Order *order.Order
	Block *ledger.Block
	Hint  *order.TransferHint
}

// UpdateOrderStatusCommandHandler handles the business logic of deciding an
// order. Only the order's recipient or an admin may decide it. Accepting
// emits a TransferHint pointing at the custody transfer to perform next; the
// custody state machine itself is never invoked here.
type UpdateOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	auditLedger *services.AuditLedger
}

// NewUpdateOrderStatusCommandHandler creates a handler for order decisions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	auditLedger *services.AuditLedger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the order decision command. A Fulfilled order asked to
// become Fulfilled again short-circuits: no update, no history, no block.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (UpdateOrderStatusResponse, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateOrderStatusResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateOrderStatusResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return UpdateOrderStatusResponse{}, err
	}

	actor := cmd.Actor()
	if actor.Username() != aggregate.ToUser() && actor.Role() != identity.RoleSuperAdmin {
		return UpdateOrderStatusResponse{}, errs.NewAuthorizationError(actor.Username(),
			fmt.Sprintf("only the order's recipient ('%s') can decide it", aggregate.ToUser()))
	}

	changed, err := h.applyDecision(aggregate, cmd.Target())
	if err != nil {
		return UpdateOrderStatusResponse{}, err
	}
	if !changed {
		return UpdateOrderStatusResponse{Order: aggregate}, nil
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return UpdateOrderStatusResponse{}, err
	}

	payload := map[string]any{
		"type":       ledger.EventTypeOrderStatusUpdated,
		"order_id":   aggregate.ID().String(),
		"product_id": aggregate.ProductID().String(),
		"status":     aggregate.Status().String(),
		"by":         actor.Username(),
	}

	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return UpdateOrderStatusResponse{}, err
	}

	response := UpdateOrderStatusResponse{Order: aggregate, Block: &block}
	if aggregate.Status() == order.Accepted {
		hint := order.NewTransferHint(aggregate.ProductID(), aggregate.FromUser())
		response.Hint = &hint
	}
	return response, nil
}

// applyDecision maps the requested status onto the aggregate's transition
// methods. changed=false means the request was a tolerated no-op.
func (h *UpdateOrderStatusCommandHandler) applyDecision(aggregate *order.Order, target order.Status) (bool, error) {
	now := time.Now()

	switch target {
	case order.Accepted:
		return true, aggregate.Accept(now)
	case order.Rejected:
		return true, aggregate.Reject(now)
	case order.Fulfilled:
		return aggregate.Fulfill(now)
	default:
		return false, errs.NewStateTransitionError(aggregate.Status().String(), target.String(),
			"orders cannot be moved back to this status")
	}
}
