package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/events"
	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/models"
	"github.com/craftedcommune/cafe/internal/service"
	"github.com/craftedcommune/cafe/internal/service/search"
	"github.com/craftedcommune/cafe/internal/transport"
)

type AdminCatalogHandler struct {
	Svc      *service.CatalogService
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (h *AdminCatalogHandler) syncIndex(c echo.Context, prod *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, prod); err != nil {
		logging.FromContext(c.Request().Context()).Error("product index failed", "product_id", prod.ID, "error", err)
	}
}

func (h *AdminCatalogHandler) CreateProduct(c echo.Context) error {
	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "create_product", fmt.Sprintf("Created product %q", prod.Name))
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_created",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	h.syncIndex(c, prod)

	return c.JSON(http.StatusCreated, prod)
}

func (h *AdminCatalogHandler) PatchProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "update_product", fmt.Sprintf("Updated product %q", prod.Name))
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(prod.ID), map[string]any{
		"type":       "product_updated",
		"product_id": prod.ID,
		"name":       prod.Name,
	})
	h.syncIndex(c, prod)

	return c.JSON(http.StatusOK, prod)
}

func (h *AdminCatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteProduct(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "delete_product", fmt.Sprintf("Deleted product %d", id))
	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})
	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, id); err != nil {
			logging.FromContext(c.Request().Context()).Error("product index delete failed", "product_id", id, "error", err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHandler) ListCategories(c echo.Context) error {
	cats, err := h.Svc.Repo.ListCategories(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *AdminCatalogHandler) CreateCategory(c echo.Context) error {
	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "create_category", fmt.Sprintf("Created category %q", cat.Name))
	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminCatalogHandler) PatchCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.PatchCategory(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "update_category", fmt.Sprintf("Updated category %q", cat.Name))
	return c.JSON(http.StatusOK, cat)
}

func (h *AdminCatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	recordActivity(c, h.Svc.Repo, "delete_category", fmt.Sprintf("Deleted category %d", id))
	return c.NoContent(http.StatusNoContent)
}
