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

func TestReview_RatingAggregate(t *testing.T) {
	gdb, r := newRepo(t)
	pub := &recordingPublisher{}
	svc := &ReviewService{Repo: r, Events: pub}
	ctx := context.Background()

	_, pp := dbtest.Producer(t, gdb)

	steps := []struct {
		rating     int
		wantRating float64
	}{
		{5, 5.0},
		{4, 4.5},
		{4, 4.3},
	}
	for i, s := range steps {
		c := dbtest.Consumer(t, gdb)
		o := dbtest.Order(t, gdb, c.ID, pp.ID, models.OrderStatusDelivered)

		rev, err := svc.CreateReview(ctx, sessionOf(c), transport.CreateReviewRequest{OrderID: o.ID, Rating: s.rating})
		require.NoError(t, err)
		assert.Equal(t, pp.ID, rev.ProducerID)

		var got models.ProducerProfile
		require.NoError(t, gdb.First(&got, "id = ?", pp.ID).Error)
		assert.InDelta(t, s.wantRating, got.Rating, 1e-9)
		assert.Equal(t, int64(i+1), got.TotalReviews)
	}

	reviews, err := svc.ListReviews(ctx, pp.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	for _, rv := range reviews {
		assert.NotNil(t, rv.Reviewer)
	}
	assert.Equal(t, []string{"review_created", "review_created", "review_created"}, pub.types())
}

func TestReview_Rules(t *testing.T) {
	gdb, r := newRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	consumer := dbtest.Consumer(t, gdb)
	stranger := dbtest.Consumer(t, gdb)
	_, pp := dbtest.Producer(t, gdb)
	pending := dbtest.Order(t, gdb, consumer.ID, pp.ID, models.OrderStatusPending)
	delivered := dbtest.Order(t, gdb, consumer.ID, pp.ID, models.OrderStatusDelivered)

	_, err := svc.CreateReview(ctx, sessionOf(consumer), transport.CreateReviewRequest{OrderID: delivered.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(ctx, sessionOf(consumer), transport.CreateReviewRequest{OrderID: uuid.New(), Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateReview(ctx, sessionOf(stranger), transport.CreateReviewRequest{OrderID: delivered.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateReview(ctx, sessionOf(consumer), transport.CreateReviewRequest{OrderID: pending.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateReview(ctx, sessionOf(consumer), transport.CreateReviewRequest{OrderID: delivered.ID, Rating: 4})
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, sessionOf(consumer), transport.CreateReviewRequest{OrderID: delivered.ID, Rating: 2})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(1), countRows(t, gdb, &models.Review{}, ""))

	_, err = svc.ListReviews(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrValidation)
}
