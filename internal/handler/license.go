package handler

import (
	"errors"
	"net/http"

	"codeshop/internal/dto"
	"codeshop/internal/service"

	"github.com/labstack/echo/v4"
)

// LicenseHandler serves the API consumed by the purchased software itself:
// one-time activation, repeated validation, and the ops-side reset.
type LicenseHandler struct {
	activationService service.ActivationService
}

func NewLicenseHandler(activationService service.ActivationService) *LicenseHandler {
	return &LicenseHandler{
		activationService: activationService,
	}
}

func (h *LicenseHandler) Activate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ActivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderCode == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "orderCode is required")
	}

	// RealIP prefers X-Forwarded-For, this usually sits behind a proxy
	order, driveLink, err := h.activationService.Activate(ctx, req.OrderCode, req.DeviceID, c.RealIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrNotPaid):
			return echo.NewHTTPError(http.StatusNotFound, "order is not paid")
		case errors.Is(err, service.ErrAlreadyActivated):
			return c.JSON(http.StatusConflict, map[string]interface{}{
				"error":       "order already activated",
				"activatedAt": order.Activation.ActivatedAt,
				"deviceId":    order.Activation.DeviceID,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, &dto.ActivateResponse{
		OK:          true,
		OrderID:     order.ID,
		OrderCode:   order.OrderCode,
		DeviceID:    order.Activation.DeviceID,
		ActivatedAt: order.Activation.ActivatedAt,
		DriveLink:   driveLink,
	})
}

func (h *LicenseHandler) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ValidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	err := h.activationService.Validate(ctx, req.OrderCode, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadRequest):
			return echo.NewHTTPError(http.StatusBadRequest, "orderCode and deviceId are required")
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrNotPaid):
			return echo.NewHTTPError(http.StatusNotFound, "order is not paid")
		case errors.Is(err, service.ErrNotActivated):
			return echo.NewHTTPError(http.StatusForbidden, "order is not activated")
		case errors.Is(err, service.ErrDeviceMismatch):
			return echo.NewHTTPError(http.StatusConflict, "order is bound to another device")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *LicenseHandler) ResetActivation(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ResetActivationRequest
	if err := c.Bind(&req); err != nil || req.OrderCode == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "orderCode is required")
	}

	err := h.activationService.ResetByOrderCode(ctx, req.OrderCode)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
