package order

import (
	"errors"
	"time"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a bottom-up custody request: a downstream participant
// asking its immediate upstream role to hand over a product. It is the
// aggregate root of the order negotiation state machine.
//
// Invariants:
//   - from_user and to_user are fixed at creation; only the recipient (or an
//     admin) mutates the order afterwards
//   - status follows the fixed Pending/Accepted/Rejected/Fulfilled graph
//   - updatedAt is refreshed on every successful mutation
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// productID is the product being requested
	productID kernel.UUID

	// fromUser is the downstream requester's username
	fromUser string

	// toUser is the upstream recipient's username
	toUser string

	// message is an optional free-form note from the requester
	message string

	// status is the current negotiation state
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a Pending order from fromUser to toUser for the given
// product. Both usernames must be non-empty and distinct roles are enforced
// by the caller through UpstreamRole before recipient resolution.
func NewOrder(id, productID kernel.UUID, fromUser, toUser, message string, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if fromUser == "" {
		return nil, errs.NewValueIsRequiredError("from_user")
	}
	if toUser == "" {
		return nil, errs.NewValueIsRequiredError("to_user")
	}

	return &Order{
		id:            id,
		productID:     productID,
		fromUser:      fromUser,
		toUser:        toUser,
		message:       message,
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
func RestoreOrder(
	id, productID kernel.UUID,
	fromUser, toUser, message string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		productID:     productID,
		fromUser:      fromUser,
		toUser:        toUser,
		message:       message,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ProductID returns the identifier of the requested product.
func (o *Order) ProductID() kernel.UUID {
	return o.productID
}

// FromUser returns the downstream requester's username.
func (o *Order) FromUser() string {
	return o.fromUser
}

// ToUser returns the upstream recipient's username.
func (o *Order) ToUser() string {
	return o.toUser
}

// Message returns the requester's note.
func (o *Order) Message() string {
	return o.message
}

// Status returns the current negotiation state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last successfully mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsParticipant reports whether the given username is the order's requester
// or recipient.
func (o *Order) IsParticipant(username string) bool {
	return username == o.fromUser || username == o.toUser
}

// Accept marks the order as accepted by its recipient.
// Valid only while Pending. On success the caller is expected to surface a
// TransferHint pointing the recipient at the custody transfer.
func (o *Order) Accept(now time.Time) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Reject marks the order as rejected by its recipient. Terminal.
func (o *Order) Reject(now time.Time) error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = now
	return nil
}

// Fulfill marks an accepted order as fulfilled.
//
// Fulfilled→Fulfilled is a tolerated retransition: it returns changed=false
// and performs no mutation at all, so callers can short-circuit without
// writing duplicate history or ledger entries.
func (o *Order) Fulfill(now time.Time) (changed bool, err error) {
	if o.status == Fulfilled {
		return false, nil
	}

	newStatus, err := o.status.Fulfill()
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.updatedAt = now
	return true, nil
}
