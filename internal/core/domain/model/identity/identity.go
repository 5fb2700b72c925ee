package identity

import (
	"errors"
	"fmt"
	"strings"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

// ErrIdentityIsNotConstructed is returned when an Identity instance was not
// created through the NewIdentity constructor.
var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity constructor")

// Identity is the verified {user_id, username, role} claim supplied by the
// authorization collaborator for every call. The core trusts these claims and
// never issues or validates credentials itself.
//
// Identity is an immutable value object; the zero value is invalid and must
// be constructed via NewIdentity.
type Identity struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	username string
	role     Role

	guard guard.ConstructorGuard
}

// NewIdentity creates a validated Identity claim.
// The user ID must be a valid UUID, the username non-empty, and the role one
// of the four valid roles.
func NewIdentity(userID kernel.UUID, username string, role Role) (Identity, error) {
	ident := Identity{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ident.setUserID(userID),
		ident.setUsername(username),
		ident.setRole(role),
	); err != nil {
		return Identity{}, err
	}

	return ident, nil
}

// Validate ensures the Identity was created via NewIdentity.
func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

// UserID returns the identity's unique identifier.
func (i Identity) UserID() kernel.UUID {
	return i.userID
}

// Username returns the identity's username. Usernames identify custodians,
// owners, and order participants throughout the domain.
func (i Identity) Username() string {
	return i.username
}

// Role returns the identity's supply-chain role.
func (i Identity) Role() Role {
	return i.role
}

// IsEqual compares two identities by user ID.
func (i Identity) IsEqual(other Identity) bool {
	return i.userID.IsEqual(other.userID)
}

func (i *Identity) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	i.userID = userID
	return nil
}

func (i *Identity) setUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return errs.NewValueIsRequiredError("username")
	}
	i.username = username
	return nil
}

func (i *Identity) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	i.role = role
	return nil
}

// Authorize checks that the actor holds one of the required roles.
// It is invoked explicitly at the start of each operation, independent of
// transport. Returns an AuthorizationError naming the actor and its role when
// the check fails.
func Authorize(actor Identity, required ...Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	for _, role := range required {
		if actor.role == role {
			return nil
		}
	}

	names := make([]string, 0, len(required))
	for _, role := range required {
		names = append(names, role.String())
	}
	return errs.NewAuthorizationError(actor.username,
		fmt.Sprintf("role '%s' is not one of [%s]", actor.role, strings.Join(names, ", ")))
}
