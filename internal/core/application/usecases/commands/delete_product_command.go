package commands

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/guard"
)

var (
	ErrDeleteProductCommandIsNotConstructed = errors.New(
		"DeleteProductCommand must be created via NewDeleteProductCommand constructor",
	)
)

// DeleteProductCommand represents an admin request to remove a product and
// its history. The removal itself is still recorded on the audit chain.
type DeleteProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	actor     identity.Identity

	guard guard.ConstructorGuard
}

// NewDeleteProductCommand creates a command to remove a product.
func NewDeleteProductCommand(productID kernel.UUID, actor identity.Identity) (DeleteProductCommand, error) {
	cmd := DeleteProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setActor(actor),
	); err != nil {
		return DeleteProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteProductCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductCommandIsNotConstructed)
}

// ProductID returns the identifier of the product to remove.
func (c DeleteProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Actor returns the identity requesting the removal.
func (c DeleteProductCommand) Actor() identity.Identity {
	return c.actor
}

func (c *DeleteProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *DeleteProductCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
