package identityrepo

import (
	"context"
	"errors"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIdentityRepository implements IdentityRepository using GORM.
type GormIdentityRepository struct {
	db *gorm.DB
}

// NewGormIdentityRepository creates a new GORM identity repository.
func NewGormIdentityRepository(db *gorm.DB) *GormIdentityRepository {
	return &GormIdentityRepository{db: db}
}

// Add saves a new identity to the database.
func (r *GormIdentityRepository) Add(ctx context.Context, aggregate identity.Identity) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an identity by ID.
func (r *GormIdentityRepository) Get(ctx context.Context, id kernel.UUID) (identity.Identity, error) {
	if err := id.Validate(); err != nil {
		return identity.Identity{}, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Identity{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return identity.Identity{}, err
	}

	return toDomain(dto)
}

// GetByUsername retrieves an identity by its unique username.
func (r *GormIdentityRepository) GetByUsername(ctx context.Context, username string) (identity.Identity, error) {
	if username == "" {
		return identity.Identity{}, errs.NewValueIsRequiredError("username")
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Identity{}, errs.NewObjectNotFoundError("user", username)
		}
		return identity.Identity{}, err
	}

	return toDomain(dto)
}

// GetFirstByRole retrieves the first registered identity holding the given
// role, ordered by username for a deterministic pick.
func (r *GormIdentityRepository) GetFirstByRole(ctx context.Context, role identity.Role) (identity.Identity, error) {
	if err := role.Validate(); err != nil {
		return identity.Identity{}, err
	}

	var dto UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ?", role.String()).
		Order("username ASC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Identity{}, errs.NewObjectNotFoundError("user", role.String())
		}
		return identity.Identity{}, err
	}

	return toDomain(dto)
}

// GetAllByRole retrieves every identity holding the given role.
func (r *GormIdentityRepository) GetAllByRole(ctx context.Context, role identity.Role) ([]identity.Identity, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ?", role.String()).
		Order("username ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	identities := make([]identity.Identity, 0, len(dtos))
	for _, dto := range dtos {
		ident, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		identities = append(identities, ident)
	}

	return identities, nil
}

// Delete removes an identity from storage.
func (r *GormIdentityRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&UserDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}

	return nil
}
