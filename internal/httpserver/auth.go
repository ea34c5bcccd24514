package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
	"github.com/Skotchmaster/cofy_shop/internal/logging"
	"github.com/Skotchmaster/cofy_shop/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		l.Warn("register_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_error", "status", errorStatus(err), "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user := authmw.CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authorization required"})
	}
	return c.JSON(http.StatusOK, user)
}
