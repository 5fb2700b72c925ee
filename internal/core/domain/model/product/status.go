package product

import (
	"fmt"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/errs"
)

// Status represents a product's position in the custody lifecycle.
// Statuses form a fixed total order and only ever advance along it:
//
//	Created < ReadyForShipping < Shipped < InTransit <
//	DeliveredToRetailer < AvailableForSale < Sold < Recalled
//
// Two statuses are hand-off points where custody moves to the next role:
// ReadyForShipping (to a distributor) and DeliveredToRetailer (to a retailer).
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Created is the initial status set when a manufacturer registers a product.
	Created

	// ReadyForShipping marks the product as packed and hands custody to a distributor.
	ReadyForShipping

	// Shipped marks the product as dispatched by the distributor.
	Shipped

	// InTransit marks the product as moving; requires the product to be Shipped.
	InTransit

	// DeliveredToRetailer marks arrival and hands custody to a retailer;
	// requires the product to be InTransit.
	DeliveredToRetailer

	// AvailableForSale marks the product as on the retailer's shelf.
	AvailableForSale

	// Sold marks the product as sold to an end customer.
	Sold

	// Recalled is a reserved terminal exceptional state. No role is currently
	// permitted to target it; it exists pending future role grants.
	Recalled
)

// statusRanks is the explicit rank table over the fixed total order.
// Ranks are declared per status rather than derived from declaration position,
// so reordering the constants cannot silently change transition semantics.
func statusRanks() map[Status]int {
	return map[Status]int{
		Created:             0,
		ReadyForShipping:    1,
		Shipped:             2,
		InTransit:           3,
		DeliveredToRetailer: 4,
		AvailableForSale:    5,
		Sold:                6,
		Recalled:            7,
	}
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:       "Unknown",
		Created:             "Created",
		ReadyForShipping:    "ReadyForShipping",
		Shipped:             "Shipped",
		InTransit:           "InTransit",
		DeliveredToRetailer: "DeliveredToRetailer",
		AvailableForSale:    "AvailableForSale",
		Sold:                "Sold",
		Recalled:            "Recalled",
	}
}

// StatusFromString parses a wire-format status name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := statusRanks()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Rank returns the status's position in the fixed total order.
// Returns -1 for invalid statuses.
func (s Status) Rank() int {
	if rank, ok := statusRanks()[s]; ok {
		return rank
	}
	return -1
}

// AllowedForRole reports whether the given role may set this status as a
// transition target. SuperAdmin has no allowed targets of its own; it only
// bypasses the custodian check.
func (s Status) AllowedForRole(role identity.Role) bool {
	allowed := map[identity.Role][]Status{
		identity.RoleManufacturer: {Created, ReadyForShipping},
		identity.RoleDistributor:  {Shipped, InTransit, DeliveredToRetailer},
		identity.RoleRetailer:     {AvailableForSale, Sold},
	}
	for _, target := range allowed[role] {
		if s == target {
			return true
		}
	}
	return false
}

// HandOffRole returns the role the next custodian must hold when this status
// is a custody hand-off point, and whether it is one.
func (s Status) HandOffRole() (identity.Role, bool) {
	switch s {
	case ReadyForShipping:
		return identity.RoleDistributor, true
	case DeliveredToRetailer:
		return identity.RoleRetailer, true
	default:
		return identity.RoleUnknown, false
	}
}

// RequiredPredecessor returns the exact status a product must currently hold
// before a distributor may set this status, and whether such a constraint
// exists. This enforces strict sub-sequencing within the distributor stage:
// InTransit requires Shipped, DeliveredToRetailer requires InTransit.
func (s Status) RequiredPredecessor() (Status, bool) {
	switch s {
	case InTransit:
		return Shipped, true
	case DeliveredToRetailer:
		return InTransit, true
	default:
		return StatusUnknown, false
	}
}
