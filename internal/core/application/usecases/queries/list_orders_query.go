package queries

import (
	"errors"
	"fmt"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/order"
	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// Mailbox selects which side of an order the actor must be on.
const (
	BoxAll      = "all"
	BoxSent     = "sent"
	BoxReceived = "received"
)

// ListOrdersQuery retrieves the actor's orders, newest first. Admins see
// every order; everyone else sees only orders they sent or received.
type ListOrdersQuery struct {
	actor  identity.Identity
	box    string
	status *order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query over the actor's orders. box selects
// sent, received or both sides; status optionally narrows to one state.
func NewListOrdersQuery(actor identity.Identity, box string, status *order.Status) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if box != BoxAll && box != BoxSent && box != BoxReceived {
		return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("box",
			fmt.Errorf("%q is not one of all, sent, received", box))
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		actor:  actor,
		box:    box,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the identity requesting the listing.
func (q ListOrdersQuery) Actor() identity.Identity {
	return q.actor
}

// Box returns which side of the orders the actor must be on.
func (q ListOrdersQuery) Box() string {
	return q.box
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// ListOrdersQueryResponse is the read-side shape of one order row, with the
// product's name joined in for display. ProductName is empty when the
// product has since been deleted.
type ListOrdersQueryResponse struct {
	ID          string
	ProductID   string
	ProductName string
	FromUser    string
	ToUser      string
	Message     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
