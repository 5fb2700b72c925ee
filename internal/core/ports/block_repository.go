package ports

import (
	"context"

	"provenance/internal/core/domain/model/ledger"
)

// BlockRepository defines the persistence contract for audit chain blocks.
// Blocks are append-only: there is no update or delete.
type BlockRepository interface {
	// Add persists a new block. The block's index must be unique.
	Add(ctx context.Context, block ledger.Block) error

	// GetAllOrdered retrieves the whole chain ordered by index ascending.
	GetAllOrdered(ctx context.Context) ([]ledger.Block, error)
}
