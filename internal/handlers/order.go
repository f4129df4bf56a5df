package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/events"
	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/service"
	"github.com/craftedcommune/cafe/internal/transport"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *events.Producer
}

// PlaceOrder is the checkout endpoint the storefront posts the cart to.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return c.JSON(http.StatusBadRequest, transport.PlaceOrderResponse{
			Success: false,
			Message: "Invalid order data",
		})
	}

	order, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Error processing order"
		if svcStatus, svcMsg, ok := orderErrorStatus(err); ok {
			status, msg = svcStatus, svcMsg
		}
		l.Warn("place_order_error", "status", status, "error", err)
		return c.JSON(status, transport.PlaceOrderResponse{Success: false, Message: msg})
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.OrderNumber, map[string]any{
		"type":         "order_created",
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total":        order.TotalAmount,
		"points":       order.TotalPoints,
	})

	l.Info("place_order_success", "order_number", order.OrderNumber, "items", len(order.Items))
	return c.JSON(http.StatusOK, transport.PlaceOrderResponse{
		Success:     true,
		Message:     "Order placed successfully!",
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID,
	})
}

func orderErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, fmt.Sprintf("Invalid order: %v", err), true
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "Could not allocate order number, please retry", true
	default:
		return 0, "", false
	}
}

// GetOrder serves the receipt / admin detail read path.
func (h *OrderHandler) GetOrder(c echo.Context) error {
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
