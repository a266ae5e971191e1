package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type ProducerHandler struct {
	Producers *service.ProducerService
	Profiles  *service.ProfileService
}

func (h *ProducerHandler) ListProducers(c echo.Context) error {
	out, err := h.Producers.ListProducers(c.Request().Context(), c.QueryParam("is_bio") == "true")
	if err != nil {
		return fail(c, "list_producers_error", err)
	}
	return ok(c, http.StatusOK, out)
}

func (h *ProducerHandler) GetProducer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.Producers.GetProducer(c.Request().Context(), id)
	if err != nil {
		return fail(c, "get_producer_error", err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *ProducerHandler) PatchProducer(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req transport.PatchProducerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.Producers.PatchProducer(c.Request().Context(), sessionFrom(c), id, req)
	if err != nil {
		return fail(c, "patch_producer_error", err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *ProducerHandler) GetProfile(c echo.Context) error {
	p, err := h.Profiles.GetProfile(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return fail(c, "get_profile_error", err)
	}
	return ok(c, http.StatusOK, p)
}

func (h *ProducerHandler) UpdateProfile(c echo.Context) error {
	var req transport.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	p, err := h.Profiles.UpdateProfile(c.Request().Context(), sessionFrom(c), req)
	if err != nil {
		return fail(c, "update_profile_error", err)
	}
	return ok(c, http.StatusOK, p)
}
