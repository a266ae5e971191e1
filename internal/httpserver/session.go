package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
)

// sessionFrom reads the caller set by the auth middleware. Routes without the
// middleware get an empty session.
func sessionFrom(c echo.Context) service.Session {
	raw, _ := c.Get("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return service.Session{}
	}
	role, _ := c.Get("role").(string)
	return service.Session{UserID: id, Role: role}
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Identifiant invalide")
	}
	return id, nil
}

// queryID parses an optional uuid query parameter.
func queryID(c echo.Context, name string) (*uuid.UUID, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" invalide")
	}
	return &id, nil
}
