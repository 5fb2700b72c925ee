// Package blockrepo provides data transfer objects and mapping functions
// for persisted audit-ledger blocks.
package blockrepo

import (
	"encoding/json"

	"provenance/internal/core/domain/model/ledger"
)

// BlockDTO represents the database structure for persisting ledger blocks.
// The position column is named block_index because "index" is a reserved
// word in Postgres.
type BlockDTO struct {
	BlockIndex   int    `gorm:"column:block_index;primaryKey;autoIncrement:false"`
	Timestamp    float64
	Data         string `gorm:"type:text"`
	PreviousHash string
	Hash         string
}

// TableName specifies the database table name for ledger blocks.
func (BlockDTO) TableName() string {
	return "blocks"
}

func fromDomain(block ledger.Block) (BlockDTO, error) {
	data, err := block.DataJSON()
	if err != nil {
		return BlockDTO{}, err
	}

	return BlockDTO{
		BlockIndex:   block.Index(),
		Timestamp:    block.Timestamp(),
		Data:         string(data),
		PreviousHash: block.PreviousHash(),
		Hash:         block.Hash(),
	}, nil
}

func toDomain(dto BlockDTO) (ledger.Block, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(dto.Data), &data); err != nil {
		return ledger.Block{}, err
	}

	return ledger.RestoreBlock(dto.BlockIndex, dto.Timestamp, data, dto.PreviousHash, dto.Hash)
}
