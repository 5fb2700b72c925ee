package ports

import (
	"context"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
)

// IdentityRepository defines the persistence contract for supply chain
// participants.
type IdentityRepository interface {
	// Add persists a new identity. The username must be unique.
	Add(ctx context.Context, aggregate identity.Identity) error

	// Get retrieves an identity by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (identity.Identity, error)

	// GetByUsername retrieves an identity by its unique username.
	GetByUsername(ctx context.Context, username string) (identity.Identity, error)

	// GetFirstByRole retrieves the first registered identity holding the
	// given role. Used to resolve the recipient of a bottom-up order.
	GetFirstByRole(ctx context.Context, role identity.Role) (identity.Identity, error)

	// GetAllByRole retrieves every identity holding the given role.
	GetAllByRole(ctx context.Context, role identity.Role) ([]identity.Identity, error)

	// Delete removes an identity from storage.
	Delete(ctx context.Context, id kernel.UUID) error
}
