package queries

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/guard"
)

var (
	ErrListOrderableProductsQueryIsNotConstructed = errors.New(
		"ListOrderableProductsQuery must be created via NewListOrderableProductsQuery constructor",
	)
)

// ListOrderableProductsQuery retrieves the products the actor could place an
// order for, following the bottom-up hierarchy: retailers see
// distributor-held products, distributors see manufacturer-held products,
// manufacturers see their own stock.
type ListOrderableProductsQuery struct {
	actor    identity.Identity
	supplier string

	guard guard.ConstructorGuard
}

// NewListOrderableProductsQuery creates an availability query. supplier
// optionally narrows the listing to one custodian's stock.
func NewListOrderableProductsQuery(actor identity.Identity, supplier string) (ListOrderableProductsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrderableProductsQuery{}, err
	}

	return ListOrderableProductsQuery{
		actor:    actor,
		supplier: supplier,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrderableProductsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderableProductsQueryIsNotConstructed)
}

// Actor returns the identity requesting the listing.
func (q ListOrderableProductsQuery) Actor() identity.Identity {
	return q.actor
}

// Supplier returns the optional custodian filter, or the empty string.
func (q ListOrderableProductsQuery) Supplier() string {
	return q.supplier
}
