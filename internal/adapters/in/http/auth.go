package http

import (
	"provenance/internal/core/domain/model/identity"
	"provenance/internal/core/domain/model/kernel"
	"provenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Trusted-gateway identity headers. Authentication itself happens upstream;
// this service receives the already-verified caller identity.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-Username"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest reconstructs the caller identity from the gateway headers.
func actorFromRequest(ctx echo.Context) (identity.Identity, error) {
	header := ctx.Request().Header

	rawID := header.Get(HeaderUserID)
	if rawID == "" {
		return identity.Identity{}, errs.NewValueIsRequiredError(HeaderUserID)
	}
	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return identity.Identity{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserID, err)
	}

	username := header.Get(HeaderUsername)
	if username == "" {
		return identity.Identity{}, errs.NewValueIsRequiredError(HeaderUsername)
	}

	role, err := identity.RoleFromString(header.Get(HeaderUserRole))
	if err != nil {
		return identity.Identity{}, errs.NewValueIsInvalidErrorWithCause(HeaderUserRole, err)
	}

	return identity.NewIdentity(userID, username, role)
}
