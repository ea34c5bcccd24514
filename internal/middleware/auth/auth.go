package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	"github.com/Skotchmaster/cofy_shop/internal/models"
	"github.com/Skotchmaster/cofy_shop/internal/tokens"
)

const principalKey = "principal"

type Middleware struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func New(db *gorm.DB, secret []byte) *Middleware {
	return &Middleware{DB: db, JWTSecret: secret}
}

// RequireAuth resolves the bearer token to a user record and attaches it
// to the request context. Authorization is read-only: no writes happen
// here.
func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
		}
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		userID, err := tokens.Parse(raw, m.JWTSecret)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		// The token may outlive its user.
		var user models.User
		if err := m.DB.WithContext(c.Request().Context()).
			Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				l.Warn("token for deleted user", "user_id", userID)
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set(principalKey, &user)
		return next(c)
	}
}

// RequireAdmin must be composed after RequireAuth.
func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authorization required")
		}
		if !user.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}
		return next(c)
	}
}

// CurrentUser returns the principal resolved by RequireAuth, or nil.
func CurrentUser(c echo.Context) *models.User {
	if v := c.Get(principalKey); v != nil {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
