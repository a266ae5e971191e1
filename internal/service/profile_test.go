package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/internal/dbtest"
	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

func TestProfile_GetAndUpdate(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &ProfileService{Repo: r}
	ctx := context.Background()

	consumer := dbtest.Consumer(t, gdb)
	producerUser, pp := dbtest.Producer(t, gdb)

	got, err := svc.GetProfile(ctx, sessionOf(consumer))
	require.NoError(t, err)
	assert.Nil(t, got.ProducerProfile)

	got, err = svc.GetProfile(ctx, sessionOf(producerUser))
	require.NoError(t, err)
	require.NotNil(t, got.ProducerProfile)
	assert.Equal(t, pp.ID, got.ProducerProfile.ID)

	updated, err := svc.UpdateProfile(ctx, sessionOf(consumer), transport.UpdateProfileRequest{
		FullName: ptr("Awa N."),
		Phone:    ptr("+221770000000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Awa N.", updated.FullName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "+221770000000", *updated.Phone)

	_, err = svc.UpdateProfile(ctx, sessionOf(consumer), transport.UpdateProfileRequest{FullName: ptr("  ")})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.GetProfile(ctx, Session{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducer_ListGetPatch(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &ProducerService{Repo: r}
	ctx := context.Background()

	owner, pp := dbtest.Producer(t, gdb)
	other, bio := dbtest.Producer(t, gdb)
	_, inactive := dbtest.Producer(t, gdb)
	require.NoError(t, gdb.Model(bio).Updates(map[string]any{"is_certified_bio": true, "rating": 4.8}).Error)
	require.NoError(t, gdb.Model(inactive).Update("is_active", false).Error)
	dbtest.Product(t, gdb, pp.ID, 1000, 5)

	all, err := svc.ListProducers(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bio.ID, all[0].ID)

	onlyBio, err := svc.ListProducers(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyBio, 1)

	got, err := svc.GetProducer(ctx, pp.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
	require.NotNil(t, got.Profile)
	assert.Equal(t, owner.ID, got.Profile.ID)
	_, err = svc.GetProducer(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.PatchProducer(ctx, sessionOf(other), pp.ID, transport.PatchProducerRequest{BusinessName: ptr("Vol")})
	assert.ErrorIs(t, err, ErrForbidden)

	patched, err := svc.PatchProducer(ctx, sessionOf(owner), pp.ID, transport.PatchProducerRequest{
		BusinessName:   ptr("Ferme des Niayes"),
		IsCertifiedBio: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ferme des Niayes", patched.BusinessName)
	assert.True(t, patched.IsCertifiedBio)

	var stored models.ProducerProfile
	require.NoError(t, gdb.First(&stored, "id = ?", pp.ID).Error)
	assert.Equal(t, "Ferme des Niayes", stored.BusinessName)
}
