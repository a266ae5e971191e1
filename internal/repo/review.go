package repo

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func (r *GormRepo) ListReviews(ctx context.Context, producerID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	if err := r.DB.WithContext(ctx).
		Preload("Reviewer").
		Where("producer_id = ?", producerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) ReviewExists(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Review{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateReview inserts the review and recomputes the producer's rating and
// review count from all of its reviews in the same transaction.
func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Reviewer").Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return err
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("producer_id = ?", review.ProducerID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.ProducerProfile{}).
			Where("id = ?", review.ProducerID).
			Updates(map[string]any{
				"rating":        RoundRating(agg.Avg),
				"total_reviews": agg.Count,
			}).Error
	})
}

// RoundRating rounds to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
