package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	"github.com/Skotchmaster/agrilink/pkg/tokens"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func setAuthCookies(c echo.Context, p tokens.Pair) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, p.AccessToken, "/", p.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, p.RefreshToken, "/", p.RefreshExp))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.Auth.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, "register_error", err)
	}

	logging.FromContext(c.Request().Context()).Info("register_success", "user_id", profile.ID, "role", profile.Role)
	return ok(c, http.StatusCreated, profile)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, "login_error", err)
	}

	setAuthCookies(c, res.Pair)
	logging.FromContext(c.Request().Context()).Info("login_success", "user_id", res.UserID)
	return ok(c, http.StatusOK, transport.LoginResponse{
		UserID:       res.UserID,
		Role:         res.Role,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// refreshToken reads the refresh token from its cookie, then from the body.
func refreshToken(c echo.Context) string {
	if ck, err := c.Cookie(tokens.RefreshCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	var req transport.RefreshRequest
	if err := c.Bind(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := refreshToken(c)
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Non authentifie")
	}

	pair, err := h.Auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
		c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
		return fail(c, "refresh_error", err)
	}

	setAuthCookies(c, *pair)
	return ok(c, http.StatusOK, echo.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth_logout")

	if err := h.Auth.LogOut(c.Request().Context(), refreshToken(c)); err != nil {
		l.Error("logout_error", "status", 500, "reason", "cannot revoke refresh token", "error", err)
	}

	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	l.Info("logout_success")
	return ok(c, http.StatusOK, echo.Map{"message": "Deconnecte"})
}
