package loggingmw

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/pkg/logging"
)

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "debug")))

	e.GET("/orders/:id", func(c echo.Context) error {
		c.Set("user_id", "u-1")
		logging.FromContext(c.Request().Context()).Info("get_order")
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Introuvable")
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	e.ServeHTTP(httptest.NewRecorder(), req)

	recs := lines(t, &buf)
	require.Len(t, recs, 2)
	assert.Equal(t, "get_order", recs[0]["msg"])
	assert.Equal(t, "/orders/:id", recs[0]["path"])
	assert.Equal(t, "rid-1", recs[0]["request_id"])
	assert.Equal(t, "request completed", recs[1]["msg"])
	assert.EqualValues(t, 200, recs[1]["status"])
	assert.Equal(t, "u-1", recs[1]["user_id"])

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	recs = lines(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "WARN", recs[0]["level"])
	assert.EqualValues(t, 404, recs[0]["status"])
}
