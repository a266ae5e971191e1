package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type CartHandler struct {
	Cart *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	items, err := h.Cart.GetCart(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return fail(c, "get_cart_error", err)
	}
	return ok(c, http.StatusOK, items)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req transport.AddToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, created, err := h.Cart.AddToCart(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		return fail(c, "add_to_cart_error", err)
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return ok(c, code, item)
}

// RemoveFromCart deletes ?item_id= or the whole cart when it is absent.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, err := queryID(c, "item_id")
	if err != nil {
		return err
	}
	itemID := uuid.Nil
	if id != nil {
		itemID = *id
	}

	if err := h.Cart.RemoveFromCart(c.Request().Context(), sessionFrom(c), itemID); err != nil {
		return fail(c, "remove_from_cart_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
