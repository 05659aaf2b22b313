package handler

import (
	"errors"
	"fmt"
	"net/http"

	"codeshop/internal/dto"
	"codeshop/internal/model"
	"codeshop/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	paymentService service.PaymentService
}

func NewOrderHandler(paymentService service.PaymentService) *OrderHandler {
	return &OrderHandler{
		paymentService: paymentService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.ItemID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "itemId is required")
	}

	result, err := h.paymentService.CreateOrder(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		case errors.Is(err, service.ErrUpstream):
			return echo.NewHTTPError(http.StatusBadGateway, "could not create payment session")
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// HandleSuccess is the provider's return-trip redirect. The page always
// renders the persisted order status; a bad or missing signature just means
// the order shows up still PENDING.
func (h *OrderHandler) HandleSuccess(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	order, err := h.paymentService.ConfirmReturn(ctx, id, c.QueryParam("status"), c.QueryParam("sig"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.String(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.HTML(http.StatusOK, orderStatusPage(order))
}

func (h *OrderHandler) HandleCancel(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromParam(c)
	if err != nil {
		return err
	}

	order, err := h.paymentService.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.String(http.StatusNotFound, "order not found")
		}
		return err
	}

	return c.HTML(http.StatusOK, orderStatusPage(order))
}

func orderStatusPage(order *model.Order) string {
	heading := "Payment pending"
	detail := "We have not received a payment confirmation for this order yet."
	if order.Status == model.OrderStatusPaid {
		heading = "Payment received"
		detail = "Your order is paid. Use your order code in the application to activate your download."
	}

	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Order %d</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				text-align: center;
				margin-top: 80px;
			}
			.code {
				font-size: 24px;
				font-weight: bold;
			}
		</style>
	</head>
	<body>
		<h2>%s</h2>
		<p>%s</p>
		<p>Order code: <span class="code">%d</span></p>
	</body>
	</html>
	`, order.OrderCode, heading, detail, order.OrderCode)
}
