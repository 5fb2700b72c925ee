package ports

import (
	"context"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	// The product must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	// The product must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetAllByOwner retrieves every product owned by the given username.
	// Used when a deleted user's products must be cleaned up together.
	GetAllByOwner(ctx context.Context, owner string) ([]*product.Product, error)

	// Delete removes a product aggregate from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
