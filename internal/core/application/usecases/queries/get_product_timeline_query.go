package queries

import (
	"errors"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/guard"
)

var (
	ErrGetProductTimelineQueryIsNotConstructed = errors.New(
		"GetProductTimelineQuery must be created via NewGetProductTimelineQuery constructor",
	)
)

// GetProductTimelineQuery retrieves a product's verified history straight
// from the audit chain, normalized into a uniform timeline shape.
type GetProductTimelineQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProductTimelineQuery creates a query for the given product's
// timeline.
func NewGetProductTimelineQuery(productID kernel.UUID) (GetProductTimelineQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetProductTimelineQuery{}, err
	}

	return GetProductTimelineQuery{
		productID: productID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetProductTimelineQueryIsNotConstructed)
}

// ProductID returns the product whose timeline is requested.
func (q GetProductTimelineQuery) ProductID() kernel.UUID {
	return q.productID
}

// TimelineEntry is one normalized step of a product's chain-backed history.
// Latitude and Longitude are nil when the recording block carried no usable
// coordinates.
type TimelineEntry struct {
	Status        string
	By            string
	Timestamp     float64
	Latitude      *float64
	Longitude     *float64
	RawBlockIndex int
}

// GetProductTimelineQueryResponse carries the normalized timeline and the
// chain verification outcome it was read under.
type GetProductTimelineQueryResponse struct {
	ProductID           string
	Timeline            []TimelineEntry
	Verified            bool
	VerificationMessage string
}
