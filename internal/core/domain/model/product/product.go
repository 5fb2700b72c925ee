package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents a physical good moving through the supply chain. It is
// the aggregate root of the custody state machine.
//
// Product follows these invariants:
//   - The owner is the immutable creator identity; the custodian is whoever
//     currently holds the product physically
//   - current status only ever advances along the fixed total order
//   - Custodian changes only at defined hand-off transitions
//   - Can only be created through NewProduct or RestoreProduct
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// name is the human-readable product name
	name string

	// owner is the username of the manufacturer that created the product;
	// immutable for the product's lifetime
	owner string

	// custodian is the username of the identity in current physical possession
	custodian string

	// description is free-form product detail
	description string

	// status is the current position in the custody lifecycle
	status Status

	// createdAt is the creation time of the product record
	createdAt time.Time

	// isConstructed ensures the product was created via a factory method
	isConstructed bool
}

// NewProduct creates a new Product registered by the given creator.
// The creator becomes both owner and initial custodian and the status starts
// at Created. Name must be non-empty.
func NewProduct(id kernel.UUID, name, description string, creator identity.Identity, now time.Time) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := creator.Validate(); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		name:          name,
		owner:         creator.Username(),
		custodian:     creator.Username(),
		description:   description,
		status:        Created,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreProduct reconstructs a Product from persistence.
// Used by repository implementations; all fields must already be valid.
func RestoreProduct(
	id kernel.UUID,
	name, owner, custodian, description string,
	status Status,
	createdAt time.Time,
) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, errs.NewValueIsRequiredError("owner")
	}
	if custodian == "" {
		return nil, errs.NewValueIsRequiredError("custodian")
	}

	return &Product{
		id:            id,
		name:          name,
		owner:         owner,
		custodian:     custodian,
		description:   description,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's name.
func (p *Product) Name() string {
	return p.name
}

// Owner returns the username of the product's immutable creator.
func (p *Product) Owner() string {
	return p.owner
}

// Custodian returns the username of the identity in current physical
// possession of the product.
func (p *Product) Custodian() string {
	return p.custodian
}

// Description returns the product's description.
func (p *Product) Description() string {
	return p.description
}

// Status returns the product's current custody status.
func (p *Product) Status() Status {
	return p.status
}

// CreatedAt returns the creation time of the product record.
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// Transition validates and applies a custody status change requested by actor.
//
// The preconditions, each independently rejectable:
//  1. The actor is the current custodian, or holds the super_admin role.
//  2. The target status is in the actor's role's allowed set.
//  3. The target status ranks strictly above the current status.
//  4. Within the distributor stage, the target's required predecessor (if any)
//     must equal the current status exactly.
//  5. At hand-off points the recipient is required and must hold the expected
//     role; custody then moves to the recipient. Otherwise the custodian
//     becomes the acting username (unchanged for the usual custodian call).
//
// On failure the product is left unmodified and the specific violated rule is
// returned as a typed error.
func (p *Product) Transition(actor identity.Identity, target Status, transferTo *identity.Identity) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if actor.Username() != p.custodian && actor.Role() != identity.RoleSuperAdmin {
		return errs.NewAuthorizationError(actor.Username(),
			fmt.Sprintf("you are not the current custodian ('%s')", p.custodian))
	}

	if !target.AllowedForRole(actor.Role()) {
		return errs.NewAuthorizationError(actor.Username(),
			fmt.Sprintf("role '%s' cannot set status '%s'", actor.Role(), target))
	}

	if target.Rank() <= p.status.Rank() {
		return errs.NewStateTransitionError(p.status.String(), target.String(),
			"status rank must strictly increase")
	}

	if actor.Role() == identity.RoleDistributor {
		if required, ok := target.RequiredPredecessor(); ok && p.status != required {
			return errs.NewStateTransitionError(p.status.String(), target.String(),
				fmt.Sprintf("product must first be in '%s' status", required))
		}
	}

	newCustodian := actor.Username()
	if expectedRole, ok := target.HandOffRole(); ok {
		if transferTo == nil {
			return errs.NewValueIsRequiredError(
				fmt.Sprintf("transfer_to_username is required for status '%s'", target))
		}
		if err := transferTo.Validate(); err != nil {
			return err
		}
		if transferTo.Role() != expectedRole {
			return errs.NewValueIsInvalidErrorWithCause("transfer_to_username",
				fmt.Errorf("can only transfer to '%s', but '%s' is a '%s'",
					expectedRole, transferTo.Username(), transferTo.Role()))
		}
		newCustodian = transferTo.Username()
	}

	p.status = target
	p.custodian = newCustodian
	return nil
}
