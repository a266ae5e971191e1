package storage

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, secret string) *Store {
	t.Helper()
	return &Store{
		Dir:       t.TempDir(),
		BaseURL:   "http://localhost:8080/",
		FilesPath: "/api/v1/files",
		Secret:    []byte(secret),
	}
}

func TestStore_PutAndPath(t *testing.T) {
	s := newStore(t, "k")

	require.NoError(t, s.Put(context.Background(), "u1/1-a.png", strings.NewReader("data")))

	p, err := s.Path("u1/1-a.png")
	require.NoError(t, err)
	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "data", string(raw))
}

func TestStore_RejectsTraversal(t *testing.T) {
	s := newStore(t, "k")

	for _, key := range []string{"", "../x.png", "a/../../x.png", "/abs.png", "a//b.png"} {
		_, err := s.Path(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestStore_SignedURL_Verify(t *testing.T) {
	s := newStore(t, "signing-secret")

	raw, err := s.SignedURL("u1/1-a.png", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "http://localhost:8080/api/v1/files/u1/1-a.png?token="), raw)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	token := u.Query().Get("token")

	require.NoError(t, s.Verify("u1/1-a.png", token))
	assert.ErrorIs(t, s.Verify("u1/other.png", token), ErrInvalidSignature)
	assert.ErrorIs(t, newStore(t, "other").Verify("u1/1-a.png", token), ErrInvalidSignature)
}

func TestStore_SignedURL_Expired(t *testing.T) {
	s := newStore(t, "signing-secret")

	raw, err := s.SignedURL("u1/1-a.png", -time.Minute)
	require.NoError(t, err)
	u, _ := url.Parse(raw)

	assert.ErrorIs(t, s.Verify("u1/1-a.png", u.Query().Get("token")), ErrInvalidSignature)
}

func TestStore_SignedURL_NoSecret(t *testing.T) {
	s := newStore(t, "")

	_, err := s.SignedURL("k.png", time.Hour)
	assert.ErrorIs(t, err, ErrSigningUnavailable)
	assert.Equal(t, "http://localhost:8080/api/v1/files/k.png", s.PublicURL("k.png"))
}
