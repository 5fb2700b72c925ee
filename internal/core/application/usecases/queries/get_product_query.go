package queries

import (
	"errors"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/guard"
)

var (
	ErrGetProductQueryIsNotConstructed = errors.New(
		"GetProductQuery must be created via NewGetProductQuery constructor",
	)
)

// GetProductQuery retrieves a single product, optionally with its custody
// history embedded.
type GetProductQuery struct {
	productID      kernel.UUID
	includeHistory bool

	guard guard.ConstructorGuard
}

// NewGetProductQuery creates a query for one product.
func NewGetProductQuery(productID kernel.UUID, includeHistory bool) (GetProductQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductQuery{}, err
	}

	return GetProductQuery{
		productID:      productID,
		includeHistory: includeHistory,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductQuery) Validate() error {
	return q.guard.Validate(ErrGetProductQueryIsNotConstructed)
}

// ProductID returns the identifier of the requested product.
func (q GetProductQuery) ProductID() kernel.UUID {
	return q.productID
}

// IncludeHistory reports whether the custody history should be embedded in
// the response.
func (q GetProductQuery) IncludeHistory() bool {
	return q.includeHistory
}
