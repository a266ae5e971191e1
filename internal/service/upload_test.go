package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/internal/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngBody(size int) []byte {
	b := make([]byte, size)
	copy(b, pngHeader)
	return b
}

func newUploadService(t *testing.T, secret string) *UploadService {
	t.Helper()
	return &UploadService{Store: &storage.Store{
		Dir:       t.TempDir(),
		BaseURL:   "http://localhost:8080/",
		FilesPath: "/files",
		Secret:    []byte(secret),
	}}
}

func TestUpload_StoresImage(t *testing.T) {
	svc := newUploadService(t, "")
	sess := Session{UserID: uuid.New()}
	body := pngBody(2048)

	res, err := svc.UploadImage(context.Background(), sess, "image/png", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Path, sess.UserID.String()+"/"))
	assert.True(t, strings.HasSuffix(res.Path, ".png"))
	assert.Equal(t, "http://localhost:8080/files/"+res.Path, res.URL)

	stored, err := os.ReadFile(filepath.Join(svc.Store.Dir, filepath.FromSlash(res.Path)))
	require.NoError(t, err)
	assert.Equal(t, body, stored)
}

func TestUpload_SignedURLWhenSecretSet(t *testing.T) {
	svc := newUploadService(t, "files-secret")
	body := pngBody(100)

	res, err := svc.UploadImage(context.Background(), Session{UserID: uuid.New()}, "image/png", 100, bytes.NewReader(body))
	require.NoError(t, err)
	require.Contains(t, res.URL, "?token=")

	token := res.URL[strings.Index(res.URL, "?token=")+len("?token="):]
	assert.NoError(t, svc.Store.Verify(res.Path, token))
}

func TestUpload_Rejects(t *testing.T) {
	svc := newUploadService(t, "")
	sess := Session{UserID: uuid.New()}
	ctx := context.Background()

	tests := []struct {
		name        string
		sess        Session
		contentType string
		size        int64
		body        []byte
		wantErr     error
	}{
		{"anonymous", Session{}, "image/png", 10, pngBody(10), ErrUnauthenticated},
		{"declared too large", sess, "image/png", MaxUploadSize + 1, pngBody(10), ErrValidation},
		{"disallowed type", sess, "application/pdf", 10, []byte("%PDF-1.4 hello"), ErrValidation},
		{"sniff mismatch", sess, "image/jpeg", 20, pngBody(20), ErrValidation},
		{"empty", sess, "image/png", 0, nil, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadImage(ctx, tt.sess, tt.contentType, tt.size, bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpload_UnderstatedSizeIsCaught(t *testing.T) {
	svc := newUploadService(t, "")
	sess := Session{UserID: uuid.New()}
	body := pngBody(MaxUploadSize + 10)

	_, err := svc.UploadImage(context.Background(), sess, "image/png", 100, bytes.NewReader(body))
	assert.ErrorIs(t, err, ErrValidation)

	entries, err := os.ReadDir(filepath.Join(svc.Store.Dir, sess.UserID.String()))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
