package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
)

// CreateProfile inserts the profile unless the email is taken. A producer
// profile, when given, is created in the same transaction.
func (r *GormRepo) CreateProfile(ctx context.Context, p *models.Profile, producer *models.ProducerProfile) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("email = ?", p.Email).FirstOrCreate(p)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrAlreadyExists
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyExists
		}

		if producer != nil {
			producer.UserID = p.ID
			if err := tx.Create(producer).Error; err != nil {
				return err
			}
			p.ProducerProfile = producer
		}
		return nil
	})
}

func (r *GormRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := r.DB.WithContext(ctx).
		Preload("ProducerProfile").
		Preload("ProducerProfile.Region").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Profile, error) {
	if len(updates) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetProfile(ctx, id)
}
