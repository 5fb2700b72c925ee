package product

import (
	"errors"
	"time"

	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"
	"provenance/internal/pkg/guard"
)

// ErrHistoryEventIsNotConstructed is returned when a HistoryEvent was not
// created through the NewHistoryEvent constructor.
var ErrHistoryEventIsNotConstructed = errors.New(
	"HistoryEvent must be created via NewHistoryEvent constructor")

// HistoryEvent is an immutable record of a single custody state change.
// Events are append-only per product, ordered by timestamp, and mirror the
// audit-ledger content for direct product queries.
type HistoryEvent struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	status    Status
	by        string
	timestamp time.Time
	location  *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewHistoryEvent creates a history record for the given product state change.
// The location is optional; pass nil when the actor supplied no coordinates.
func NewHistoryEvent(
	productID kernel.UUID,
	status Status,
	by string,
	timestamp time.Time,
	location *kernel.GeoPoint,
) (HistoryEvent, error) {
	if err := productID.Validate(); err != nil {
		return HistoryEvent{}, err
	}
	if err := status.Validate(); err != nil {
		return HistoryEvent{}, err
	}
	if by == "" {
		return HistoryEvent{}, errs.NewValueIsRequiredError("by")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return HistoryEvent{}, err
		}
	}

	return HistoryEvent{
		productID: productID,
		status:    status,
		by:        by,
		timestamp: timestamp,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the HistoryEvent was created via NewHistoryEvent.
func (h HistoryEvent) Validate() error {
	return h.guard.Validate(ErrHistoryEventIsNotConstructed)
}

// ProductID returns the identifier of the product the event belongs to.
func (h HistoryEvent) ProductID() kernel.UUID {
	return h.productID
}

// Status returns the status the product entered.
func (h HistoryEvent) Status() Status {
	return h.status
}

// By returns the username of the actor that performed the change.
func (h HistoryEvent) By() string {
	return h.by
}

// Timestamp returns when the change happened.
func (h HistoryEvent) Timestamp() time.Time {
	return h.timestamp
}

// Location returns where the change happened, or nil when not recorded.
func (h HistoryEvent) Location() *kernel.GeoPoint {
	return h.location
}
