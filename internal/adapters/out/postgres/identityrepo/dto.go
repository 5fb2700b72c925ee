// Package identityrepo provides data transfer objects and mapping functions
// for registered supply chain participants.
package identityrepo

import (
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting identities.
type UserDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"uniqueIndex"`
	Role     string    `gorm:"index"`
}

// TableName specifies the database table name for identities.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(ident identity.Identity) UserDTO {
	return UserDTO{
		ID:       ident.UserID().Bytes(),
		Username: ident.Username(),
		Role:     ident.Role().String(),
	}
}

func toDomain(dto UserDTO) (identity.Identity, error) {
	userID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return identity.Identity{}, err
	}

	role, err := identity.RoleFromString(dto.Role)
	if err != nil {
		return identity.Identity{}, err
	}

	return identity.NewIdentity(userID, dto.Username, role)
}
