package commands

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

var (
	ErrDeleteUserCommandIsNotConstructed = errors.New(
		"DeleteUserCommand must be created via NewDeleteUserCommand constructor",
	)
)

// DeleteUserCommand represents an admin request to remove a participant from
// the directory, cascading over the products they own.
type DeleteUserCommand struct { //nolint:recvcheck //using for validation
	username string
	actor    identity.Identity

	guard guard.ConstructorGuard
}

// NewDeleteUserCommand creates a command to remove a participant.
func NewDeleteUserCommand(username string, actor identity.Identity) (DeleteUserCommand, error) {
	cmd := DeleteUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setActor(actor),
	); err != nil {
		return DeleteUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteUserCommand) Validate() error {
	return c.guard.Validate(ErrDeleteUserCommandIsNotConstructed)
}

// Username returns the username of the participant to remove.
func (c DeleteUserCommand) Username() string {
	return c.username
}

// Actor returns the identity requesting the removal.
func (c DeleteUserCommand) Actor() identity.Identity {
	return c.actor
}

func (c *DeleteUserCommand) setUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}

	c.username = username
	return nil
}

func (c *DeleteUserCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
