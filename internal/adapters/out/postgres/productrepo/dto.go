// Package productrepo provides data transfer objects and mapping functions
// for product persistence. Implements the repository pattern for the product
// aggregate, converting between domain entities and database rows.
package productrepo

import (
	"time"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product
// aggregates. Owner and custodian are indexed for the role-scoped listings.
type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Owner       string `gorm:"index"`
	Custodian   string `gorm:"index"`
	Status      string
	CreatedAt   time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
		Owner:       aggregate.Owner(),
		Custodian:   aggregate.Custodian(),
		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := product.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.Owner, dto.Custodian, dto.Description, status, dto.CreatedAt)
}
