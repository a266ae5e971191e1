package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSigningUnavailable = errors.New("url signing unavailable")
	ErrInvalidKey         = errors.New("invalid object key")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// Store keeps objects on local disk and hands out URLs served under
// BaseURL + FilesPath.
type Store struct {
	Dir       string
	BaseURL   string
	FilesPath string
	Secret    []byte
	Public    bool
}

func (s *Store) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || strings.Contains(key, "..") || clean[1:] != key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.Dir, filepath.FromSlash(key)), nil
}

// Put writes r under key, replacing any previous object.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// Path returns the file backing key.
func (s *Store) Path(key string) (string, error) {
	return s.path(key)
}

func (s *Store) PublicURL(key string) string {
	return strings.TrimRight(s.BaseURL, "/") + s.FilesPath + "/" + key
}

type urlClaims struct {
	jwt.RegisteredClaims
}

// SignedURL returns a URL for key valid for ttl.
func (s *Store) SignedURL(key string, ttl time.Duration) (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrSigningUnavailable
	}
	now := time.Now()
	claims := urlClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", err
	}
	return s.PublicURL(key) + "?token=" + url.QueryEscape(tok), nil
}

// Verify checks that token signs key and has not expired.
func (s *Store) Verify(key, token string) error {
	if len(s.Secret) == 0 {
		return ErrSigningUnavailable
	}
	var claims urlClaims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if claims.Subject != key {
		return ErrInvalidSignature
	}
	return nil
}

// Delete removes the object stored under key. A missing object is not an error.
func (s *Store) Delete(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
