// Package csrf guards cookie-authenticated writes with a double-submit token.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/pkg/tokens"
)

type Config struct {
	CookieName string
	HeaderName string
	Secure     bool
	TTL        time.Duration
	SkipPaths  []string
}

func DefaultConfig() Config {
	return Config{
		CookieName: "XSRF-TOKEN",
		HeaderName: "X-CSRF-Token",
		Secure:     true,
		TTL:        24 * time.Hour,
	}
}

type guard struct {
	cfg Config
}

// Middleware issues the token on safe requests and checks it on unsafe ones
// that carry the session cookies. Bearer clients have no ambient credentials
// and pass through.
func Middleware(cfg Config) echo.MiddlewareFunc {
	def := DefaultConfig()
	cfg.CookieName = cmpOr(cfg.CookieName, def.CookieName)
	cfg.HeaderName = cmpOr(cfg.HeaderName, def.HeaderName)
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	g := &guard{cfg: cfg}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if g.exempt(c.Request()) {
				return next(c)
			}
			token, err := g.token(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
			}

			r := c.Request()
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				c.Response().Header().Set(cfg.HeaderName, token)
				return next(c)
			}
			if !hasSession(r) {
				return next(c)
			}
			if !sameOrigin(r) {
				return echo.NewHTTPError(http.StatusForbidden, "Origine invalide")
			}
			got := r.Header.Get(cfg.HeaderName)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "Jeton CSRF invalide")
			}
			return next(c)
		}
	}
}

func (g *guard) exempt(r *http.Request) bool {
	if slices.Contains(g.cfg.SkipPaths, r.URL.Path) {
		return true
	}
	return strings.HasPrefix(r.Header.Get(echo.HeaderAuthorization), "Bearer ")
}

// token returns the caller's current token, minting and setting a fresh one
// when the cookie is missing.
func (g *guard) token(c echo.Context) (string, error) {
	if ck, err := c.Cookie(g.cfg.CookieName); err == nil && ck.Value != "" {
		return ck.Value, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	tok := base64.RawURLEncoding.EncodeToString(buf)

	// readable by scripts so they can echo it back in the header
	c.SetCookie(&http.Cookie{
		Name:     g.cfg.CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(g.cfg.TTL / time.Second),
		Secure:   g.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return tok, nil
}

func hasSession(r *http.Request) bool {
	for _, name := range []string{tokens.AccessCookie, tokens.RefreshCookie} {
		if ck, err := r.Cookie(name); err == nil && ck.Value != "" {
			return true
		}
	}
	return false
}

func sameOrigin(r *http.Request) bool {
	src := cmpOr(r.Header.Get("Origin"), r.Header.Get("Referer"))
	if src == "" {
		return false
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}

	scheme := "http"
	switch {
	case r.Header.Get("X-Forwarded-Proto") != "":
		scheme = r.Header.Get("X-Forwarded-Proto")
	case r.TLS != nil:
		scheme = "https"
	}
	return strings.EqualFold(u.Scheme, scheme) && strings.EqualFold(u.Host, r.Host)
}

func cmpOr(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
