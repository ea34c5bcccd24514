package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
	"github.com/Skotchmaster/cofy_shop/internal/service"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) Check(c echo.Context) error {
	user := authmw.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{"is_admin": user.IsAdmin})
}

func (h *AdminHTTP) Stats(c echo.Context) error {
	stats, err := h.Svc.GetStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// users

func (h *AdminHTTP) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHTTP) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	user, err := h.Svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	var upd service.UserUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	user, err := h.Svc.UpdateUser(ctx, authmw.CurrentUser(c), id, upd)
	if err != nil {
		l.Warn("update_user_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHTTP) SetUserAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.set_user_admin")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	user, err := h.Svc.SetUserAdmin(ctx, authmw.CurrentUser(c), id, req.IsAdmin)
	if err != nil {
		l.Warn("set_user_admin_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AdminHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_user")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}

	if err := h.Svc.DeleteUser(ctx, authmw.CurrentUser(c), id); err != nil {
		l.Warn("delete_user_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}

// products

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	product, err := h.Svc.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminHTTP) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid product id"})
	}

	var in service.ProductInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid product id"})
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

// categories

func (h *AdminHTTP) CreateCategory(c echo.Context) error {
	var in service.CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	category, err := h.Svc.CreateCategory(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *AdminHTTP) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid category id"})
	}

	var in service.CategoryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	category, err := h.Svc.UpdateCategory(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *AdminHTTP) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid category id"})
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}
