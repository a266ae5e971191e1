package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/internal/dbtest"
	"github.com/Skotchmaster/agrilink/internal/models"
)

func TestFavorite_ToggleRoundTrip(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &FavoriteService{Repo: r}
	ctx := context.Background()

	consumer := dbtest.Consumer(t, gdb)
	_, pp := dbtest.Producer(t, gdb)
	p := dbtest.Product(t, gdb, pp.ID, 800, 5)

	fav, removed, err := svc.ToggleFavorite(ctx, sessionOf(consumer), p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	require.NotNil(t, fav)
	assert.Equal(t, p.ID, fav.ProductID)

	favs, err := svc.ListFavorites(ctx, sessionOf(consumer))
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Product)
	assert.Equal(t, p.Name, favs[0].Product.Name)

	fav, removed, err = svc.ToggleFavorite(ctx, sessionOf(consumer), p.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, fav)

	favs, err = svc.ListFavorites(ctx, sessionOf(consumer))
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavorite_Validation(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &FavoriteService{Repo: r}
	consumer := dbtest.Consumer(t, gdb)

	_, _, err := svc.ToggleFavorite(context.Background(), sessionOf(consumer), uuid.Nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.ListFavorites(context.Background(), Session{})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestFavorite_UnknownProduct(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &FavoriteService{Repo: r}
	consumer := dbtest.Consumer(t, gdb)

	_, _, err := svc.ToggleFavorite(context.Background(), sessionOf(consumer), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, countRows(t, gdb, &models.Favorite{}, "user_id = ?", consumer.ID))
}
