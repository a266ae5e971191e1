package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/agrilink/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Preload("Product.Producer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart inserts the item or adds its quantity to the existing
// (user_id, product_id) row in a single statement. It reports whether a new
// row was created and reloads item from the store.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) (bool, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	proposedID := item.ID

	db := r.DB.WithContext(ctx)
	if err := db.Omit("Product").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
		}),
	}).Create(item).Error; err != nil {
		return false, err
	}

	var stored models.CartItem
	if err := db.Preload("Product").
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		First(&stored).Error; err != nil {
		return false, err
	}
	*item = stored

	return stored.ID == proposedID, nil
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, userID, itemID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
