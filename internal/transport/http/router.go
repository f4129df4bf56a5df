package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/handlers"
	"github.com/craftedcommune/cafe/internal/middleware/auth"
)

type Deps struct {
	JWTSecret []byte

	OrderHandler     *handlers.OrderHandler
	MenuHandler      *handlers.MenuHandler
	SearchHandler    *handlers.SearchHandler
	AuthHandler      *handlers.AuthHandler
	CatalogHandler   *handlers.AdminCatalogHandler
	OrdersHandler    *handlers.AdminOrderHandler
	SettingsHandler  *handlers.AdminSettingsHandler
	AnalyticsHandler *handlers.AdminAnalyticsHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	// storefront
	v1.GET("/menu", d.MenuHandler.GetMenu)
	v1.GET("/settings", d.MenuHandler.GetSettings)
	v1.GET("/search", d.SearchHandler.Search)
	v1.POST("/orders", d.OrderHandler.PlaceOrder)
	v1.GET("/orders/:id", d.OrderHandler.GetOrder)

	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	admin := v1.Group("/admin", auth.AdminOnly(d.JWTSecret))

	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)

	admin.GET("/categories", d.CatalogHandler.ListCategories)
	admin.POST("/categories", d.CatalogHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CatalogHandler.PatchCategory)
	admin.DELETE("/categories/:id", d.CatalogHandler.DeleteCategory)

	admin.GET("/orders", d.OrdersHandler.ListOrders)
	admin.GET("/orders/:id", d.OrdersHandler.GetOrder)
	admin.PATCH("/orders/:id/status", d.OrdersHandler.UpdateStatus)

	admin.GET("/settings", d.SettingsHandler.GetSettings)
	admin.PUT("/settings", d.SettingsHandler.UpdateSettings)

	admin.GET("/analytics/summary", d.AnalyticsHandler.Summary)
	admin.GET("/analytics/daily", d.AnalyticsHandler.DailySales)
	admin.GET("/analytics/top-products", d.AnalyticsHandler.TopProducts)
	admin.GET("/analytics/categories", d.AnalyticsHandler.CategoryPerformance)
	admin.GET("/analytics/hourly", d.AnalyticsHandler.HourlySales)
	admin.GET("/analytics/best-sellers", d.AnalyticsHandler.BestSellers)
}
