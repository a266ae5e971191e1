package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type FavoriteHandler struct {
	Favorites *service.FavoriteService
}

type toggleResponse struct {
	Data    *models.Favorite `json:"data"`
	Removed bool             `json:"removed"`
}

func (h *FavoriteHandler) ListFavorites(c echo.Context) error {
	out, err := h.Favorites.ListFavorites(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return fail(c, "list_favorites_error", err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *FavoriteHandler) ToggleFavorite(c echo.Context) error {
	var req transport.ToggleFavoriteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	fav, removed, err := h.Favorites.ToggleFavorite(c.Request().Context(), sessionFrom(c), req.ProductID)
	if err != nil {
		return fail(c, "toggle_favorite_error", err)
	}
	if removed {
		return c.JSON(http.StatusOK, toggleResponse{Removed: true})
	}
	return c.JSON(http.StatusCreated, toggleResponse{Data: fav})
}
