package httpserver

import (
	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/cofy_shop/internal/middleware/auth"
)

type Deps struct {
	Auth    *authmw.Middleware
	AuthH   *AuthHTTP
	Cart    *CartHTTP
	Catalog *CatalogHTTP
	Booking *BookingHTTP
	Admin   *AdminHTTP
	Search  *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", d.AuthH.Register)
	v1.POST("/auth/login", d.AuthH.Login)
	v1.GET("/auth/me", d.AuthH.Me, d.Auth.RequireAuth)

	v1.GET("/products", d.Catalog.GetProducts)
	v1.GET("/products/:id", d.Catalog.GetProduct)
	v1.GET("/categories", d.Catalog.GetCategories)
	v1.GET("/categories/:id", d.Catalog.GetCategory)

	if d.Search != nil {
		v1.GET("/search", d.Search.Search)
	}

	cart := v1.Group("/cart", d.Auth.RequireAuth)
	cart.GET("", d.Cart.GetCart)
	cart.POST("/add", d.Cart.AddItem)
	cart.POST("/merge", d.Cart.Merge)
	cart.PUT("/item/:itemId", d.Cart.UpdateItem)
	cart.DELETE("/item/:itemId", d.Cart.RemoveItem)
	cart.DELETE("/clear", d.Cart.Clear)

	bookings := v1.Group("/bookings", d.Auth.RequireAuth)
	bookings.POST("", d.Booking.Create)
	bookings.GET("/my-bookings", d.Booking.MyBookings)
	bookings.GET("/:id", d.Booking.Get)
	bookings.PUT("/:id/cancel", d.Booking.Cancel)
	bookings.GET("", d.Booking.ListAll, d.Auth.RequireAdmin)
	bookings.PUT("/:id/status", d.Booking.UpdateStatus, d.Auth.RequireAdmin)
	bookings.DELETE("/:id", d.Booking.Delete, d.Auth.RequireAdmin)

	admin := v1.Group("/admin", d.Auth.RequireAuth, d.Auth.RequireAdmin)
	admin.GET("/check", d.Admin.Check)
	admin.GET("/stats", d.Admin.Stats)

	admin.GET("/users", d.Admin.ListUsers)
	admin.GET("/users/:id", d.Admin.GetUser)
	admin.PUT("/users/:id", d.Admin.UpdateUser)
	admin.PUT("/users/:id/admin", d.Admin.SetUserAdmin)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)

	admin.POST("/products", d.Admin.CreateProduct)
	admin.PUT("/products/:id", d.Admin.UpdateProduct)
	admin.DELETE("/products/:id", d.Admin.DeleteProduct)

	admin.POST("/categories", d.Admin.CreateCategory)
	admin.PUT("/categories/:id", d.Admin.UpdateCategory)
	admin.DELETE("/categories/:id", d.Admin.DeleteCategory)
}
