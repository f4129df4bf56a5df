package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/repo"
)

type AdminAnalyticsHandler struct {
	Repo *repo.GormRepo
}

// dateRange parses start/end query params (YYYY-MM-DD), defaulting to the
// last 30 days. The end bound is exclusive at the following midnight.
func dateRange(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	to := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	if s := c.QueryParam("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if s := c.QueryParam("end"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func (h *AdminAnalyticsHandler) Summary(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid date range")
	}

	stats, err := h.Repo.SalesStatsBetween(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *AdminAnalyticsHandler) DailySales(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid date range")
	}

	rows, err := h.Repo.DailySalesBetween(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminAnalyticsHandler) TopProducts(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid date range")
	}

	limit := parseIntDefault(c.QueryParam("limit"), 10)
	rows, err := h.Repo.TopProductsBetween(c.Request().Context(), from, to, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminAnalyticsHandler) CategoryPerformance(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid date range")
	}

	rows, err := h.Repo.CategoryPerformanceBetween(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminAnalyticsHandler) HourlySales(c echo.Context) error {
	from, to, err := dateRange(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid date range")
	}

	rows, err := h.Repo.HourlySalesBetween(c.Request().Context(), from, to)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AdminAnalyticsHandler) BestSellers(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), 5)
	rows, err := h.Repo.BestSellers(c.Request().Context(), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
