package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/agrilink/internal/models"
)

// PlaceOrder writes one producer's order atomically: header, items, payment,
// conditional stock decrement and removal of the checked-out cart rows.
// Any failure rolls the whole bucket back.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order, items []models.OrderItem, payment *models.Payment, cartItemIDs []uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		payment.OrderID = order.ID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		for _, it := range items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", it.ProductID, it.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", it.ProductID, ErrInsufficientStock)
			}
		}

		if err := tx.Where("id IN ? AND user_id = ?", cartItemIDs, order.UserID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}

		order.Items = items
		order.Payment = payment
		return nil
	})
}

func (r *GormRepo) orderQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Payment").
		Preload("Producer")
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.orderQuery(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListOrdersByProducer(ctx context.Context, producerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.orderQuery(ctx).Where("producer_id = ?", producerID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.orderQuery(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CompletePayment(ctx context.Context, orderID uuid.UUID, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Updates(map[string]any{"status": models.PaymentStatusCompleted, "completed_at": at}).Error
}
