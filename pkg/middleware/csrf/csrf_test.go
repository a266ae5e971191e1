package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/pkg/tokens"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SkipPaths: []string{"/login"}}))
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/cart", handler)
	e.POST("/cart", handler)
	e.POST("/login", handler)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCSRF_GetIssuesToken(t *testing.T) {
	rec := do(newEcho(), httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))

	var found bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			found = true
			assert.Equal(t, rec.Header().Get("X-CSRF-Token"), ck.Value)
		}
	}
	assert.True(t, found)
}

func TestCSRF_CookieAuthenticatedPost(t *testing.T) {
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Host = "example.com"
	req.Header.Set("Origin", "http://example.com")
	req.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "jwt"})
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: "abc"})
	assert.Equal(t, http.StatusForbidden, do(e, req).Code)

	req.Header.Set("X-CSRF-Token", "abc")
	assert.Equal(t, http.StatusOK, do(e, req).Code)

	req.Header.Set("Origin", "http://evil.example")
	assert.Equal(t, http.StatusForbidden, do(e, req).Code)
}

func TestCSRF_Passthrough(t *testing.T) {
	e := newEcho()

	bearer := httptest.NewRequest(http.MethodPost, "/cart", nil)
	bearer.Header.Set(echo.HeaderAuthorization, "Bearer xyz")
	bearer.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "jwt"})
	assert.Equal(t, http.StatusOK, do(e, bearer).Code)

	anonymous := httptest.NewRequest(http.MethodPost, "/cart", nil)
	assert.Equal(t, http.StatusOK, do(e, anonymous).Code)

	skipped := httptest.NewRequest(http.MethodPost, "/login", nil)
	skipped.AddCookie(&http.Cookie{Name: tokens.AccessCookie, Value: "jwt"})
	require.Equal(t, http.StatusOK, do(e, skipped).Code)
}
