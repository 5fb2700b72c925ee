package identity

import (
	"fmt"

	"provenance/internal/pkg/errs"
)

// Role represents a supply-chain participant's position in the custody
// hierarchy. Roles gate which product statuses an actor may set and which
// direction orders may flow.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleManufacturer creates products and prepares them for shipping.
	RoleManufacturer

	// RoleDistributor moves products between manufacturer and retailer.
	RoleDistributor

	// RoleRetailer offers and sells products to end customers.
	RoleRetailer

	// RoleSuperAdmin is the privileged administrative role. It bypasses the
	// custodian check on custody transitions and the recipient check on order
	// updates, but has no allowed target statuses of its own.
	RoleSuperAdmin
)

// getRoleStrings returns a map of Role values to their wire representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:      "unknown",
		RoleManufacturer: "manufacturer",
		RoleDistributor:  "distributor",
		RoleRetailer:     "retailer",
		RoleSuperAdmin:   "super_admin",
	}
}

// getValidRoleStrings returns a map of only valid Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleManufacturer: "manufacturer",
		RoleDistributor:  "distributor",
		RoleRetailer:     "retailer",
		RoleSuperAdmin:   "super_admin",
	}
}

// RoleFromString parses a wire-format role name ("manufacturer",
// "distributor", "retailer", "super_admin") into a Role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
// Valid roles are manufacturer, distributor, retailer, and super_admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format name of the role.
// Implements fmt.Stringer and is safe to call on any Role value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
