package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/service"
	"github.com/craftedcommune/cafe/internal/transport"
)

type AdminSettingsHandler struct {
	Repo *repo.GormRepo
}

func (h *AdminSettingsHandler) GetSettings(c echo.Context) error {
	settings, err := service.LoadSettings(c.Request().Context(), h.Repo)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts the known keys; unknown keys are never written.
func (h *AdminSettingsHandler) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if req.SiteName != nil {
		if err := h.Repo.PutSetting(ctx, service.KeySiteName, *req.SiteName); err != nil {
			return serviceError(c, err)
		}
	}
	if req.PointsRatio != nil {
		if *req.PointsRatio <= 0 {
			return errorResponse(c, http.StatusBadRequest, "points_ratio must be > 0")
		}
		if err := h.Repo.PutSetting(ctx, service.KeyPointsRatio, strconv.Itoa(*req.PointsRatio)); err != nil {
			return serviceError(c, err)
		}
	}
	if req.TaxRate != nil {
		if _, err := strconv.ParseFloat(*req.TaxRate, 64); err != nil {
			return errorResponse(c, http.StatusBadRequest, "tax_rate must be numeric")
		}
		if err := h.Repo.PutSetting(ctx, service.KeyTaxRate, *req.TaxRate); err != nil {
			return serviceError(c, err)
		}
	}
	if req.CurrencySymbol != nil {
		if err := h.Repo.PutSetting(ctx, service.KeyCurrencySymbol, *req.CurrencySymbol); err != nil {
			return serviceError(c, err)
		}
	}
	if req.CarouselAutoplay != nil {
		v := "0"
		if *req.CarouselAutoplay {
			v = "1"
		}
		if err := h.Repo.PutSetting(ctx, service.KeyCarouselAutoplay, v); err != nil {
			return serviceError(c, err)
		}
	}
	if req.CarouselInterval != nil {
		if *req.CarouselInterval <= 0 {
			return errorResponse(c, http.StatusBadRequest, "carousel_interval must be > 0")
		}
		if err := h.Repo.PutSetting(ctx, service.KeyCarouselInterval, strconv.Itoa(*req.CarouselInterval)); err != nil {
			return serviceError(c, err)
		}
	}

	recordActivity(c, h.Repo, "update_settings", "Updated system settings")

	settings, err := service.LoadSettings(ctx, h.Repo)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
