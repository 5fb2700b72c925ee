package historyrepo

import (
	"context"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add saves a new history event to the database.
func (r *GormHistoryRepository) Add(ctx context.Context, event product.HistoryEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByProduct retrieves a product's history events, oldest first.
func (r *GormHistoryRepository) GetByProduct(ctx context.Context, productID kernel.UUID) ([]product.HistoryEvent, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID.Bytes()).
		Order("timestamp ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]product.HistoryEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// DeleteByProduct removes every history event of the given product.
func (r *GormHistoryRepository) DeleteByProduct(ctx context.Context, productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&HistoryDTO{}, "product_id = ?", productID.Bytes()).Error
}
