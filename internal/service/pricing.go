package service

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/agrilink/internal/models"
)

const (
	FreeDeliveryThreshold int64 = 10000
	StandardDeliveryFee   int64 = 1000
)

// DeliveryFee is free from FreeDeliveryThreshold FCFA upwards.
func DeliveryFee(subtotal int64) int64 {
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return StandardDeliveryFee
}

// Bucket is the part of a cart sold by one producer.
type Bucket struct {
	ProducerID uuid.UUID
	Items      []models.CartItem
	Subtotal   int64
}

func (b Bucket) DeliveryFee() int64 {
	return DeliveryFee(b.Subtotal)
}

func (b Bucket) Total() int64 {
	return b.Subtotal + b.DeliveryFee()
}

// GroupByProducer splits cart items into one bucket per producer, in the
// order producers first appear. Items must have Product loaded.
func GroupByProducer(items []models.CartItem) []Bucket {
	var buckets []Bucket
	index := make(map[uuid.UUID]int)

	for _, it := range items {
		pid := it.Product.ProducerID
		i, ok := index[pid]
		if !ok {
			i = len(buckets)
			index[pid] = i
			buckets = append(buckets, Bucket{ProducerID: pid})
		}
		buckets[i].Items = append(buckets[i].Items, it)
		buckets[i].Subtotal += it.Product.Price * it.Quantity
	}
	return buckets
}
