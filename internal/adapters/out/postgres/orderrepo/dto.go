// Package orderrepo provides data transfer objects and mapping functions for
// order persistence.
package orderrepo

import (
	"time"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Both participant columns are indexed for the mailbox listings.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	FromUser  string    `gorm:"index"`
	ToUser    string    `gorm:"index"`
	Message   string
	Status    string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		ProductID: aggregate.ProductID().Bytes(),
		FromUser:  aggregate.FromUser(),
		ToUser:    aggregate.ToUser(),
		Message:   aggregate.Message(),
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, productID, dto.FromUser, dto.ToUser, dto.Message,
		status, dto.CreatedAt, dto.UpdatedAt)
}
