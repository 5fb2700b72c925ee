package ports

import (
	"context"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"
)

// HistoryRepository defines the persistence contract for per-product custody
// history events. History is append-only except for whole-product cleanup.
type HistoryRepository interface {
	// Add persists a new history event.
	Add(ctx context.Context, event product.HistoryEvent) error

	// GetByProduct retrieves a product's history events ordered oldest first.
	GetByProduct(ctx context.Context, productID kernel.UUID) ([]product.HistoryEvent, error)

	// DeleteByProduct removes every history event of the given product.
	// Used when the product itself is deleted; the audit chain keeps the
	// deletion on record.
	DeleteByProduct(ctx context.Context, productID kernel.UUID) error
}
