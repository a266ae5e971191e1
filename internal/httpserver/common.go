package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/agrilink/pkg/middleware/csrf"
	loggingmw "github.com/Skotchmaster/agrilink/pkg/middleware/logging"
)

// Common returns the middleware stack every request goes through.
func Common(log *slog.Logger, corsOrigins []string) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
		loggingmw.RequestLogger(log),
		ecM.Secure(),
		ecM.BodyLimit("6M"),
	}
	if len(corsOrigins) > 0 {
		mws = append(mws, ecM.CORSWithConfig(ecM.CORSConfig{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-CSRF-Token"},
			AllowCredentials: true,
		}))
	}

	cfg := csrf.DefaultConfig()
	cfg.SkipPaths = []string{
		"/health/live", "/health/ready",
		"/api/v1/auth/login", "/api/v1/auth/register", "/api/v1/auth/refresh",
	}
	return append(mws, csrf.Middleware(cfg))
}
