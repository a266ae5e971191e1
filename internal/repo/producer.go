package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func (r *GormRepo) GetProducerByUserID(ctx context.Context, userID uuid.UUID) (*models.ProducerProfile, error) {
	var p models.ProducerProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) GetProducer(ctx context.Context, id uuid.UUID) (*models.ProducerProfile, error) {
	var p models.ProducerProfile
	if err := r.DB.WithContext(ctx).
		Preload("Profile").
		Preload("Region").
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) ListProducers(ctx context.Context, onlyBio bool) ([]models.ProducerProfile, error) {
	q := r.DB.WithContext(ctx).
		Preload("Profile").
		Preload("Region").
		Preload("Products").
		Where("is_active = ?", true)
	if onlyBio {
		q = q.Where("is_certified_bio = ?", true)
	}

	var out []models.ProducerProfile
	if err := q.Order("rating DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) UpdateProducer(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.ProducerProfile, error) {
	if len(updates) > 0 {
		if err := r.DB.WithContext(ctx).Model(&models.ProducerProfile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetProducer(ctx, id)
}

func (r *GormRepo) IncrementTotalSales(ctx context.Context, producerID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.ProducerProfile{}).
		Where("id = ?", producerID).
		Update("total_sales", gorm.Expr("total_sales + ?", 1)).Error
}
