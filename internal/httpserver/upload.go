package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/agrilink/internal/service"
	"github.com/Skotchmaster/agrilink/internal/storage"
	"github.com/Skotchmaster/agrilink/pkg/logging"
)

type UploadHandler struct {
	Uploads *service.UploadService
}

func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Fichier requis").SetInternal(err)
	}
	f, err := fh.Open()
	if err != nil {
		return fail(c, "upload_error", err)
	}
	defer f.Close()

	res, err := h.Uploads.UploadImage(c.Request().Context(), sessionFrom(c), fh.Header.Get(echo.HeaderContentType), fh.Size, f)
	if err != nil {
		return fail(c, "upload_error", err)
	}
	return ok(c, http.StatusOK, res)
}

// ServeFile serves a stored object. A token query parameter must sign the
// key; without one the object is served only from a public store.
func (h *UploadHandler) ServeFile(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "files")
	store := h.Uploads.Store
	key := c.Param("*")

	if token := c.QueryParam("token"); token != "" {
		if err := store.Verify(key, token); err != nil {
			l.Warn("files_error", "status", 403, "reason", "bad signature", "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "Non autorise")
		}
	} else if !store.Public {
		return echo.NewHTTPError(http.StatusForbidden, "Non autorise")
	}

	p, err := store.Path(key)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return echo.NewHTTPError(http.StatusNotFound, "Introuvable")
		}
		return fail(c, "files_error", err)
	}
	return c.File(p)
}
