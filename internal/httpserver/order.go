package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type OrderHandler struct {
	Orders *service.OrderService
}

type checkoutFailure struct {
	Error string `json:"error"`
	Data  any    `json:"data"`
}

func (h *OrderHandler) Checkout(c echo.Context) error {
	var req transport.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	orders, err := h.Orders.Checkout(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		herr := fail(c, "checkout_error", err)
		if len(orders) == 0 {
			return herr
		}
		// some producers' orders went through; report them with the error
		code, msg := statusOf(err)
		return c.JSON(code, checkoutFailure{Error: msg, Data: orders})
	}
	return ok(c, http.StatusCreated, orders)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.Orders.ListOrders(c.Request().Context(), sessionFrom(c), c.QueryParam("role"))
	if err != nil {
		return fail(c, "list_orders_error", err)
	}
	return ok(c, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Orders.GetOrder(c.Request().Context(), sessionFrom(c), id)
	if err != nil {
		return fail(c, "get_order_error", err)
	}
	return ok(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.Orders.UpdateStatus(c.Request().Context(), sessionFrom(c), id, req.Status)
	if err != nil {
		return fail(c, "update_order_status_error", err)
	}
	return ok(c, http.StatusOK, order)
}
