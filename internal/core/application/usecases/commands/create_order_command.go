package commands

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to place a bottom-up order: the
// actor asks its immediate upstream role to hand over a product.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	productID  kernel.UUID
	actor      identity.Identity
	toUsername string
	message    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place an order. toUsername may
// name a specific upstream recipient; when empty, any identity of the
// expected upstream role is resolved as recipient.
func NewCreateOrderCommand(
	orderID, productID kernel.UUID,
	actor identity.Identity,
	toUsername, message string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.toUsername = toUsername
	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the identifier of the requested product.
func (c CreateOrderCommand) ProductID() kernel.UUID {
	return c.productID
}

// Actor returns the identity placing the order.
func (c CreateOrderCommand) Actor() identity.Identity {
	return c.actor
}

// ToUsername returns the explicitly named recipient, or the empty string.
func (c CreateOrderCommand) ToUsername() string {
	return c.toUsername
}

// Message returns the requester's optional note.
func (c CreateOrderCommand) Message() string {
	return c.message
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
