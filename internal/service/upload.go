package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/agrilink/internal/storage"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/logging"
)

const (
	MaxUploadSize = 5 << 20
	signedURLTTL  = 7 * 24 * time.Hour
	sniffBytes    = 512
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type UploadService struct {
	Store *storage.Store
}

// UploadImage stores an image for the caller and returns a URL to it. The
// declared content type must match the sniffed one.
func (s *UploadService) UploadImage(ctx context.Context, sess Session, contentType string, size int64, r io.Reader) (*transport.UploadResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if size > MaxUploadSize {
		return nil, newErr(ErrValidation, "Fichier trop volumineux (max 5MB)")
	}

	declared, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		declared = strings.ToLower(strings.TrimSpace(contentType))
	}
	ext, ok := allowedImageTypes[declared]
	if !ok {
		return nil, newErr(ErrValidation, "Type de fichier non autorise (jpeg, png, webp)")
	}

	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, newErr(ErrValidation, "Fichier vide")
	}
	if sniffed := http.DetectContentType(head); sniffed != declared {
		return nil, newErr(ErrValidation, "Type de fichier non autorise (jpeg, png, webp)")
	}

	rand := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	key := fmt.Sprintf("%s/%d-%s.%s", sess.UserID, time.Now().UnixMilli(), rand, ext)

	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), r), MaxUploadSize+1)
	counted := &countingReader{r: body}
	if err := s.Store.Put(ctx, key, counted); err != nil {
		return nil, err
	}
	if counted.n > MaxUploadSize {
		// the declared size lied; the stored copy is dropped
		_ = s.Store.Delete(key)
		return nil, newErr(ErrValidation, "Fichier trop volumineux (max 5MB)")
	}

	url, err := s.Store.SignedURL(key, signedURLTTL)
	if err != nil {
		if !errors.Is(err, storage.ErrSigningUnavailable) {
			logging.FromContext(ctx).Warn("sign_url_error", "key", key, "error", err)
		}
		url = s.Store.PublicURL(key)
	}
	return &transport.UploadResponse{URL: url, Path: key}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
