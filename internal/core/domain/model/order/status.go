package order

import (
	"fmt"

	"provenance/internal/core/domain/model/identity"
	"provenance/internal/pkg/errs"
)

// Status represents the negotiation state of a bottom-up order.
// The transition graph is fixed and small:
//
//	Pending ──┬──> Accepted ──> Fulfilled ──┐
//	          │                     ^───────┘ (no-op retransition)
//	          └──> Rejected
//
// Rejected and Fulfilled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status of a newly placed order.
	Pending

	// Accepted means the upstream recipient agreed to the request. Acceptance
	// emits a hand-off hint; the custody transfer itself stays manual.
	Accepted

	// Rejected means the recipient declined. Terminal.
	Rejected

	// Fulfilled means the negotiated hand-off has been carried out. Terminal,
	// except that Fulfilled→Fulfilled is tolerated as a no-op.
	Fulfilled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Accepted:      "Accepted",
		Rejected:      "Rejected",
		Fulfilled:     "Fulfilled",
	}
}

// StatusFromString parses a wire-format order status name into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Pending && s != Accepted && s != Rejected && s != Fulfilled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid order status", s))
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

// Accept transitions the status to Accepted.
// Valid only from Pending.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewStateTransitionError(s.String(), Accepted.String(),
			"only pending orders can be accepted")
	}
	return Accepted, nil
}

// Reject transitions the status to Rejected.
// Valid only from Pending.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewStateTransitionError(s.String(), Rejected.String(),
			"only pending orders can be rejected")
	}
	return Rejected, nil
}

// Fulfill transitions the status to Fulfilled.
// Valid from Accepted; Fulfilled→Fulfilled is tolerated so callers can treat
// a retransition as a no-op.
func (s Status) Fulfill() (Status, error) {
	if s != Accepted && s != Fulfilled {
		return 0, errs.NewStateTransitionError(s.String(), Fulfilled.String(),
			"only accepted orders can be fulfilled")
	}
	return Fulfilled, nil
}

// UpstreamRole returns the role an order originated by the given role must be
// addressed to: retailers request from distributors, distributors from
// manufacturers. Roles absent from the hierarchy cannot originate orders.
func UpstreamRole(role identity.Role) (identity.Role, bool) {
	switch role {
	case identity.RoleRetailer:
		return identity.RoleDistributor, true
	case identity.RoleDistributor:
		return identity.RoleManufacturer, true
	default:
		return identity.RoleUnknown, false
	}
}
