package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/service"
	"github.com/craftedcommune/cafe/internal/transport"
	"github.com/craftedcommune/cafe/internal/util"
)

type AdminOrderHandler struct {
	Svc *service.OrderService
}

func (h *AdminOrderHandler) ListOrders(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	status := c.QueryParam("status")

	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.Repo.ListOrders(c.Request().Context(), status, offset, limit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *AdminOrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	order, err := h.Svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateOrderStatus(c.Request().Context(), id, req.Status); err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "update_order_status", fmt.Sprintf("Order %d set to %s", id, req.Status))
	return c.JSON(http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
