package handler

import (
	"errors"
	"net/http"
	"strconv"

	"codeshop/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func idFromParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *CatalogHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.catalogService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHandler) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	item, err := h.catalogService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, item)
}
