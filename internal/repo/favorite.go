package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func (r *GormRepo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var out []models.Favorite
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Preload("Product.Producer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleFavorite removes the (user, product) favorite when present and adds
// it otherwise. It returns the stored favorite when one was added.
func (r *GormRepo) ToggleFavorite(ctx context.Context, userID, productID uuid.UUID) (*models.Favorite, bool, error) {
	var fav *models.Favorite
	removed := false

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			removed = true
			return nil
		}

		row := models.Favorite{UserID: userID, ProductID: productID}
		if err := tx.Omit("Product").Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&row).Error; err != nil {
			return err
		}
		fav = &row
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return fav, removed, nil
}
