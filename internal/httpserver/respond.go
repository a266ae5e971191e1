package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/pkg/logging"
)

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, dataResponse{Data: data})
}

// statusOf maps a service error onto an HTTP status and client message.
// Unclassified errors are store errors and keep their raw message.
func statusOf(err error) (int, string) {
	code := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		code, msg = http.StatusUnauthorized, "Non authentifie"
	case errors.Is(err, service.ErrForbidden):
		code, msg = http.StatusForbidden, "Non autorise"
	case errors.Is(err, service.ErrValidation):
		code, msg = http.StatusBadRequest, "Requete invalide"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		code, msg = http.StatusNotFound, "Introuvable"
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInsufficientStock):
		code, msg = http.StatusConflict, "Conflit"
	}

	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Msg
	}
	return code, msg
}

// fail logs err under event and turns it into an echo HTTP error.
func fail(c echo.Context, event string, err error) error {
	code, msg := statusOf(err)
	l := logging.FromContext(c.Request().Context())
	if code >= http.StatusInternalServerError {
		l.Error(event, "status", code, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg).SetInternal(err)
}

// ErrorHandler renders every error as {"error": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code int
		msg  string
		he   *echo.HTTPError
	)
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = fmt.Sprint(m)
		}
	} else {
		code, msg = statusOf(err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, errorResponse{Error: msg})
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("write_error_response", "error", werr)
	}
}
