package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cofy_shop/internal/service"
)

// errorStatus maps service failure kinds to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrSelfModification):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrUnknownPrincipal):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, err error) error {
	status := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return c.JSON(status, echo.Map{"message": msg})
}
