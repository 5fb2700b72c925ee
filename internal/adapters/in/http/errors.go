package http

import (
	"errors"
	"net/http"

	"provenance/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps domain errors onto HTTP status codes and writes the
// uniform error body.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidStateTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
