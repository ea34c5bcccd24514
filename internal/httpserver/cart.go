package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
	"github.com/Skotchmaster/cofy_shop/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	user := authmw.CurrentUser(c)
	cart, err := h.Svc.GetCart(ctx, user.ID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	user := authmw.CurrentUser(c)

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
		Quantity  uint      `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.AddItem(ctx, user.ID, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	user := authmw.CurrentUser(c)

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_item_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.SetItemQuantity(ctx, user.ID, itemID, req.Quantity)
	if err != nil {
		l.Warn("update_item_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	user := authmw.CurrentUser(c)

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid item id"})
	}

	cart, err := h.Svc.RemoveItem(ctx, user.ID, itemID)
	if err != nil {
		l.Warn("remove_item_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	user := authmw.CurrentUser(c)
	if _, err := h.Svc.Clear(ctx, user.ID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared successfully"})
}

// Merge runs the anonymous-to-authenticated cart handover.
func (h *CartHTTP) Merge(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.merge")

	user := authmw.CurrentUser(c)

	var req struct {
		Items []service.LocalItem `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("merge_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	cart, err := h.Svc.Merge(ctx, user.ID, req.Items)
	if err != nil {
		l.Error("merge_cart_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}
