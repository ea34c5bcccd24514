package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
	"github.com/Skotchmaster/cofy_shop/internal/service"
)

type BookingHTTP struct {
	Svc *service.BookingService
}

func (h *BookingHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "booking.create")

	user := authmw.CurrentUser(c)

	var req service.BookingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_booking_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	booking, err := h.Svc.Create(ctx, user.ID, req)
	if err != nil {
		l.Warn("create_booking_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *BookingHTTP) MyBookings(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	bookings, err := h.Svc.ListForUser(ctx, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	user := authmw.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	booking, err := h.Svc.Get(ctx, user, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHTTP) Cancel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "booking.cancel")

	user := authmw.CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	booking, err := h.Svc.Cancel(ctx, user, id)
	if err != nil {
		l.Warn("cancel_booking_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHTTP) ListAll(c echo.Context) error {
	bookings, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "booking.update_status")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	booking, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		l.Warn("update_status_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHTTP) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid booking id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted successfully"})
}
