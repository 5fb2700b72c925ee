package commands

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"
	"provenance/internal/pkg/guard"
)

var (
	ErrTransitionCustodyCommandIsNotConstructed = errors.New(
		"TransitionCustodyCommand must be created via NewTransitionCustodyCommand constructor",
	)
)

// TransitionCustodyCommand represents a request to advance a product's
// lifecycle status, optionally handing custody to a named recipient at the
// hand-off points.
type TransitionCustodyCommand struct { //nolint:recvcheck //using for validation
	productID          kernel.UUID
	target             product.Status
	actor              identity.Identity
	transferToUsername string
	location           *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewTransitionCustodyCommand creates a command to advance a product's
// status. transferToUsername is required only at hand-off statuses; location
// is always optional.
func NewTransitionCustodyCommand(
	productID kernel.UUID,
	target product.Status,
	actor identity.Identity,
	transferToUsername string,
	location *kernel.GeoPoint,
) (TransitionCustodyCommand, error) {
	cmd := TransitionCustodyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setTarget(target),
		cmd.setActor(actor),
		cmd.setLocation(location),
	); err != nil {
		return TransitionCustodyCommand{}, err
	}

	cmd.transferToUsername = transferToUsername
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionCustodyCommand) Validate() error {
	return c.guard.Validate(ErrTransitionCustodyCommandIsNotConstructed)
}

// ProductID returns the identifier of the product being advanced.
func (c TransitionCustodyCommand) ProductID() kernel.UUID {
	return c.productID
}

// Target returns the requested lifecycle status.
func (c TransitionCustodyCommand) Target() product.Status {
	return c.target
}

// Actor returns the identity requesting the transition.
func (c TransitionCustodyCommand) Actor() identity.Identity {
	return c.actor
}

// TransferToUsername returns the named recipient for hand-off statuses,
// or the empty string.
func (c TransitionCustodyCommand) TransferToUsername() string {
	return c.transferToUsername
}

// Location returns where the transition happened, or nil.
func (c TransitionCustodyCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *TransitionCustodyCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *TransitionCustodyCommand) setTarget(target product.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *TransitionCustodyCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *TransitionCustodyCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
