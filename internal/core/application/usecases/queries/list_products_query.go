package queries

import (
	"errors"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/guard"
)

var (
	ErrListProductsQueryIsNotConstructed = errors.New(
		"ListProductsQuery must be created via NewListProductsQuery constructor",
	)
)

// ListProductsQuery retrieves the products visible to the actor. Admins see
// everything; everyone else sees products they own or hold, and distributors
// additionally see products that passed through their hands.
type ListProductsQuery struct {
	actor identity.Identity

	guard guard.ConstructorGuard
}

// NewListProductsQuery creates a role-scoped product listing query.
func NewListProductsQuery(actor identity.Identity) (ListProductsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListProductsQuery{}, err
	}

	return ListProductsQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListProductsQuery) Validate() error {
	return q.guard.Validate(ErrListProductsQueryIsNotConstructed)
}

// Actor returns the identity requesting the listing.
func (q ListProductsQuery) Actor() identity.Identity {
	return q.actor
}

// ListProductsQueryResponse is the read-side shape of one product row.
type ListProductsQueryResponse struct {
	ID          string
	Name        string
	Description string
	Owner       string
	Custodian   string
	Status      string
	CreatedAt   time.Time
}
