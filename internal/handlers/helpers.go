package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/events"
	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/service"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Status: "error", Message: msg})
}

// serviceError maps service sentinels to HTTP statuses without leaking
// storage details.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict):
		return errorResponse(c, http.StatusConflict, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("internal error", "error", err)
		return errorResponse(c, http.StatusInternalServerError, "internal error")
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// publish fires an event without letting broker trouble fail the request.
func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("event publish failed", "topic", topic, "error", err)
	}
}

// recordActivity writes an admin audit row; failures are logged only.
func recordActivity(c echo.Context, r *repo.GormRepo, action, description string) {
	adminID, _ := c.Get("admin_id").(uint)
	if adminID == 0 {
		return
	}
	entry := &models.ActivityLog{
		AdminID:     adminID,
		Action:      action,
		Description: description,
		IPAddress:   c.RealIP(),
	}
	if err := r.RecordActivity(c.Request().Context(), entry); err != nil {
		logging.FromContext(c.Request().Context()).Error("activity log failed", "action", action, "error", err)
	}
}
