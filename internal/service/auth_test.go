package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	_, r := newRepo(t)
	return &AuthService{
		Repo:          r,
		JWTSecret:     []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}
}

func TestAuth_RegisterProducerCreatesBusinessProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, transport.RegisterRequest{
		Email:        "  Fatou@Ferme.SN ",
		Password:     "secret1",
		FullName:     "Fatou Sall",
		Role:         models.RoleProducer,
		BusinessName: "Ferme Sall",
	})
	require.NoError(t, err)
	assert.Equal(t, "fatou@ferme.sn", p.Email)
	require.NotNil(t, p.ProducerProfile)
	assert.Equal(t, "Ferme Sall", p.ProducerProfile.BusinessName)
	assert.True(t, p.ProducerProfile.IsActive)
	assert.NotEqual(t, "secret1", p.PasswordHash)

	_, err = svc.Register(ctx, transport.RegisterRequest{
		Email:    "fatou@ferme.sn",
		Password: "another",
		FullName: "Someone",
		Role:     models.RoleConsumer,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuth_RegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{"missing email", transport.RegisterRequest{Password: "secret1", FullName: "A", Role: models.RoleConsumer}},
		{"short password", transport.RegisterRequest{Email: "a@b.sn", Password: "123", FullName: "A", Role: models.RoleConsumer}},
		{"admin role", transport.RegisterRequest{Email: "a@b.sn", Password: "secret1", FullName: "A", Role: models.RoleAdmin}},
		{"producer without business", transport.RegisterRequest{Email: "a@b.sn", Password: "secret1", FullName: "A", Role: models.RoleProducer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestAuth_LoginRefreshLogout(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{
		Email:    "awa@mail.sn",
		Password: "motdepasse",
		FullName: "Awa",
		Role:     models.RoleConsumer,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "awa@mail.sn", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Login(ctx, "nobody@mail.sn", "motdepasse")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	res, err := svc.Login(ctx, "AWA@mail.sn", "motdepasse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.UserID)
	assert.Equal(t, models.RoleConsumer, res.Role)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, models.RoleConsumer, claims.Role)

	rotated, err := svc.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, rotated.RefreshToken)

	// the rotated-out token cannot be replayed
	_, err = svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	require.NoError(t, svc.LogOut(ctx, rotated.RefreshToken))
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	// an access token is not a refresh token
	_, err = svc.Refresh(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.NoError(t, svc.LogOut(ctx, ""))
}
