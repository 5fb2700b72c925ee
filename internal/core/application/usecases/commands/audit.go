package commands

import (
	"context"

	"provenance/internal/core/domain/model/ledger"
	"provenance/internal/core/domain/services"
)

// AuditUoW is the minimal unit of work an audited commit needs.
type AuditUoW interface {
	TxManager
	BlockRepoFactory
}

// appendAndCommit records the payload as the next audit block and commits the
// unit of work inside the ledger's persist step. The in-memory chain extends
// only after the commit succeeds, so a rolled-back transaction never leaves a
// phantom block behind.
func appendAndCommit(
	ctx context.Context,
	auditLedger *services.AuditLedger,
	uow AuditUoW,
	payload map[string]any,
) (ledger.Block, error) {
	return auditLedger.Append(ctx, payload, func(ctx context.Context, block ledger.Block) error {
		if err := uow.BlockRepository().Add(ctx, block); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
}
