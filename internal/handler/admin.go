package handler

import (
	"errors"
	"net/http"

	"codeshop/internal/dto"
	"codeshop/internal/service"

	"github.com/labstack/echo/v4"
)

// AdminHandler is the session-gated back office: catalog CRUD, the order
// ledger, and manual overrides.
type AdminHandler struct {
	catalogService    service.CatalogService
	paymentService    service.PaymentService
	activationService service.ActivationService
}

func NewAdminHandler(
	catalogService service.CatalogService,
	paymentService service.PaymentService,
	activationService service.ActivationService,
) *AdminHandler {
	return &AdminHandler{
		catalogService:    catalogService,
		paymentService:    paymentService,
		activationService: activationService,
	}
}

func (h *AdminHandler) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.catalogService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *AdminHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	item, err := h.catalogService.Create(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrBadRequest) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	var req dto.ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	item, err := h.catalogService.Update(ctx, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadRequest):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	if err := h.catalogService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.paymentService.ListOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) MarkOrderPaid(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	if err := h.paymentService.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *AdminHandler) ResetActivation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	if err := h.activationService.ResetByID(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
