package commands

import (
	"context"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/core/domain/services"
)

// TransitionCustodyResponse carries the advanced product together with the
// audit block that recorded the transition.
type TransitionCustodyResponse struct {
	Product *product.Product
	Block   ledger.Block
}

// TransitionCustodyCommandHandler handles the business logic of a custody
// transition: the product's status advances along the lifecycle and, at the
// hand-off statuses, custody moves to the named recipient.
//
// All preconditions are enforced by the product aggregate against the row
// read inside the transaction; any failure leaves product, history and chain
// untouched.
type TransitionCustodyCommandHandler struct {
	uowFactory  CustodyUoWFactory
	auditLedger *services.AuditLedger
}

// NewTransitionCustodyCommandHandler creates a handler for custody
// transitions.
func NewTransitionCustodyCommandHandler(
	uowFactory CustodyUoWFactory,
	auditLedger *services.AuditLedger,
) TransitionCustodyCommandHandler {
	return TransitionCustodyCommandHandler{
		uowFactory:  uowFactory,
		auditLedger: auditLedger,
	}
}

// Handle processes the custody transition command. The product update, the
// history event and the audit block are written in one transaction.
func (h *TransitionCustodyCommandHandler) Handle(ctx context.Context, cmd TransitionCustodyCommand) (TransitionCustodyResponse, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionCustodyResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionCustodyResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ProductRepository().Get(ctx, cmd.ProductID())
	if err != nil {
		return TransitionCustodyResponse{}, err
	}

	var transferTo *identity.Identity
	if cmd.TransferToUsername() != "" {
		recipient, err := uow.IdentityRepository().GetByUsername(ctx, cmd.TransferToUsername())
		if err != nil {
			return TransitionCustodyResponse{}, err
		}
		transferTo = &recipient
	}

	previousCustodian := aggregate.Custodian()
	if err = aggregate.Transition(cmd.Actor(), cmd.Target(), transferTo); err != nil {
		return TransitionCustodyResponse{}, err
	}

	if err = uow.ProductRepository().Update(ctx, aggregate); err != nil {
		return TransitionCustodyResponse{}, err
	}

	now := time.Now()
	event, err := product.NewHistoryEvent(aggregate.ID(), aggregate.Status(), cmd.Actor().Username(), now, cmd.Location())
	if err != nil {
		return TransitionCustodyResponse{}, err
	}
	if err = uow.HistoryRepository().Add(ctx, event); err != nil {
		return TransitionCustodyResponse{}, err
	}

	payload := h.buildPayload(cmd, aggregate, previousCustodian)
	block, err := appendAndCommit(ctx, h.auditLedger, uow, payload)
	if err != nil {
		return TransitionCustodyResponse{}, err
	}

	return TransitionCustodyResponse{Product: aggregate, Block: block}, nil
}

// buildPayload tags hand-off transitions as custody transfers and everything
// else as plain status updates.
func (h *TransitionCustodyCommandHandler) buildPayload(
	cmd TransitionCustodyCommand,
	aggregate *product.Product,
	previousCustodian string,
) map[string]any {
	payload := map[string]any{
		"product_id": aggregate.ID().String(),
		"status":     aggregate.Status().String(),
		"by":         cmd.Actor().Username(),
	}

	if _, handOff := cmd.Target().HandOffRole(); handOff {
		payload["type"] = ledger.EventTypeCustodyTransferred
		payload["from"] = previousCustodian
		payload["to"] = aggregate.Custodian()
	} else {
		payload["type"] = ledger.EventTypeStatusUpdated
		payload["new_custodian"] = aggregate.Custodian()
	}

	if cmd.Location() != nil {
		payload["location"] = cmd.Location().String()
	}

	return payload
}
