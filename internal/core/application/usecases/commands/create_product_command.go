package commands

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

var (
	ErrCreateProductCommandIsNotConstructed = errors.New(
		"CreateProductCommand must be created via NewCreateProductCommand constructor",
	)
)

// CreateProductCommand represents a request to register a new product.
// The acting manufacturer becomes both owner and initial custodian.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	name        string
	description string
	actor       identity.Identity
	location    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a new product.
// The location is optional and records where the product entered the chain.
func NewCreateProductCommand(
	productID kernel.UUID,
	name, description string,
	actor identity.Identity,
	location *kernel.GeoPoint,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setName(name),
		cmd.setActor(actor),
		cmd.setLocation(location),
	); err != nil {
		return CreateProductCommand{}, err
	}

	cmd.description = description
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the unique identifier for the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product's display name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Description returns the product's optional description.
func (c CreateProductCommand) Description() string {
	return c.description
}

// Actor returns the identity performing the registration.
func (c CreateProductCommand) Actor() identity.Identity {
	return c.actor
}

// Location returns where the product entered the chain, or nil.
func (c CreateProductCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateProductCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateProductCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
