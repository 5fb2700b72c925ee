// Package identity models the verified actor claims consumed by every custody
// and order operation: the Role hierarchy (manufacturer, distributor,
// retailer, super_admin), the Identity value object carrying
// {user_id, username, role}, and the explicit Authorize role gate.
//
// Credential issuance and verification are external collaborators; this
// package only represents claims that have already been verified upstream.
package identity
