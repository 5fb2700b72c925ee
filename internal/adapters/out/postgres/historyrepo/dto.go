// Package historyrepo provides data transfer objects and mapping functions
// for the per-product custody history.
package historyrepo

import (
	"time"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// HistoryDTO represents the database structure for persisting history
// events. The actor column is named by_who and indexed: distributor-scoped
// product listings look products up through it.
type HistoryDTO struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Status    string
	ByWho     string `gorm:"column:by_who;index"`
	Timestamp time.Time
	Latitude  *float64
	Longitude *float64
}

// TableName specifies the database table name for history events.
func (HistoryDTO) TableName() string {
	return "product_histories"
}

func fromDomain(event product.HistoryEvent) HistoryDTO {
	dto := HistoryDTO{
		ProductID: event.ProductID().Bytes(),
		Status:    event.Status().String(),
		ByWho:     event.By(),
		Timestamp: event.Timestamp(),
	}

	if loc := event.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto HistoryDTO) (product.HistoryEvent, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return product.HistoryEvent{}, err
	}

	status, err := product.StatusFromString(dto.Status)
	if err != nil {
		return product.HistoryEvent{}, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return product.HistoryEvent{}, err
		}
		location = &point
	}

	return product.NewHistoryEvent(productID, status, dto.ByWho, dto.Timestamp, location)
}
