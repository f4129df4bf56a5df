package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/service"
)

type MenuHandler struct {
	Catalog *service.CatalogService
	Repo    *repo.GormRepo
}

// GetMenu returns the storefront menu: active categories with their active
// products, entirely database-driven.
func (h *MenuHandler) GetMenu(c echo.Context) error {
	sections, err := h.Catalog.Menu(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"menu": sections})
}

// GetSettings exposes the display tunables the storefront needs (currency
// symbol, carousel behavior, points ratio).
func (h *MenuHandler) GetSettings(c echo.Context) error {
	settings, err := service.LoadSettings(c.Request().Context(), h.Repo)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
