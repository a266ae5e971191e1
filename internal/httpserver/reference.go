package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/service"
)

type ReferenceHandler struct {
	Reference *service.ReferenceService
}

func (h *ReferenceHandler) Categories(c echo.Context) error {
	out, err := h.Reference.Categories(c.Request().Context())
	if err != nil {
		return fail(c, "list_categories_error", err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *ReferenceHandler) Regions(c echo.Context) error {
	out, err := h.Reference.Regions(c.Request().Context())
	if err != nil {
		return fail(c, "list_regions_error", err)
	}
	return ok(c, http.StatusOK, out)
}

// ready reports 503 until the database answers a ping.
func ready(db *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "db unavailable")
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "db unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	}
}
