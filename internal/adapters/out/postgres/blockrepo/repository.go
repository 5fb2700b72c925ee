package blockrepo

import (
	"context"

	"provenance/internal/core/domain/model/ledger"

	"gorm.io/gorm"
)

// GormBlockRepository implements BlockRepository using GORM.
type GormBlockRepository struct {
	db *gorm.DB
}

// NewGormBlockRepository creates a new GORM block repository.
func NewGormBlockRepository(db *gorm.DB) *GormBlockRepository {
	return &GormBlockRepository{db: db}
}

// Add saves a new ledger block to the database.
func (r *GormBlockRepository) Add(ctx context.Context, block ledger.Block) error {
	if err := block.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(block)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllOrdered retrieves every ledger block ordered by position, genesis
// first.
func (r *GormBlockRepository) GetAllOrdered(ctx context.Context) ([]ledger.Block, error) {
	var dtos []BlockDTO
	err := r.db.WithContext(ctx).Order("block_index ASC").Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	blocks := make([]ledger.Block, 0, len(dtos))
	for _, dto := range dtos {
		block, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
