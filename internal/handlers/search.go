package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/craftedcommune/cafe/internal/logging"
	"github.com/craftedcommune/cafe/internal/repo"
	"github.com/craftedcommune/cafe/internal/service/search"
	"github.com/craftedcommune/cafe/internal/util"
)

type SearchHandler struct {
	ES   *elasticsearch.Client
	Repo *repo.GormRepo
}

// Search looks up products by name, through Elasticsearch when configured
// and a plain catalog query otherwise.
func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "query required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	if h.ES != nil {
		total, prods, err := search.Search(c.Request().Context(), h.ES, q, from, limit)
		if err == nil {
			return c.JSON(http.StatusOK, map[string]any{"total": total, "data": prods})
		}
		logging.FromContext(c.Request().Context()).Error("es search failed, falling back to catalog", "error", err)
	}

	total, prods, err := h.Repo.SearchProducts(c.Request().Context(), q, from, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "data": prods})
}
