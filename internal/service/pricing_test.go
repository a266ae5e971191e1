package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		subtotal int64
		want     int64
	}{
		{0, 1000},
		{6000, 1000},
		{9999, 1000},
		{10000, 0},
		{12000, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeliveryFee(tt.subtotal), "subtotal %d", tt.subtotal)
	}
}

func line(producer uuid.UUID, price, qty int64) models.CartItem {
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Quantity:  qty,
		Product:   &models.Product{ProducerID: producer, Price: price},
	}
}

func TestGroupByProducer(t *testing.T) {
	p1, p2 := uuid.New(), uuid.New()
	items := []models.CartItem{
		line(p1, 3000, 2),
		line(p2, 6000, 1),
		line(p1, 500, 4),
	}

	buckets := GroupByProducer(items)
	require.Len(t, buckets, 2)

	assert.Equal(t, p1, buckets[0].ProducerID)
	assert.Len(t, buckets[0].Items, 2)
	assert.Equal(t, int64(8000), buckets[0].Subtotal)
	assert.Equal(t, int64(1000), buckets[0].DeliveryFee())
	assert.Equal(t, int64(9000), buckets[0].Total())

	assert.Equal(t, p2, buckets[1].ProducerID)
	assert.Equal(t, int64(6000), buckets[1].Subtotal)

	var seen int
	var sum int64
	for _, b := range buckets {
		require.NotEmpty(t, b.Items)
		seen += len(b.Items)
		sum += b.Subtotal
	}
	assert.Equal(t, len(items), seen)
	assert.Equal(t, int64(3000*2+6000+500*4), sum)
}

func TestGroupByProducer_Empty(t *testing.T) {
	assert.Empty(t, GroupByProducer(nil))
}
