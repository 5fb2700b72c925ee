package queries

import (
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/guard"
)

var (
	ErrListUsersByRoleQueryIsNotConstructed = errors.New(
		"ListUsersByRoleQuery must be created via NewListUsersByRoleQuery constructor",
	)
)

// ListUsersByRoleQuery retrieves the participants holding a given role.
// Used to populate transfer and order recipient pickers.
type ListUsersByRoleQuery struct {
	role identity.Role

	guard guard.ConstructorGuard
}

// NewListUsersByRoleQuery creates a directory query for one role.
func NewListUsersByRoleQuery(role identity.Role) (ListUsersByRoleQuery, error) {
	if err := role.Validate(); err != nil {
		return ListUsersByRoleQuery{}, err
	}

	return ListUsersByRoleQuery{
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListUsersByRoleQuery) Validate() error {
	return q.guard.Validate(ErrListUsersByRoleQueryIsNotConstructed)
}

// Role returns the role being looked up.
func (q ListUsersByRoleQuery) Role() identity.Role {
	return q.role
}

// ListUsersByRoleQueryResponse is the read-side shape of one participant.
type ListUsersByRoleQueryResponse struct {
	ID       string
	Username string
	Role     string
}
