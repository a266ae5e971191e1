package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, sess Session) ([]models.CartItem, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.Repo.GetCart(ctx, sess.UserID)
}

// AddToCart upserts the item. The bool reports whether a new row was made.
func (s *CartService) AddToCart(ctx context.Context, sess Session, req transport.AddToCartRequest) (*models.CartItem, bool, error) {
	if err := requireSession(sess); err != nil {
		return nil, false, err
	}
	if req.ProductID == uuid.Nil {
		return nil, false, newErr(ErrValidation, "product_id requis")
	}
	if req.Quantity < 1 {
		return nil, false, newErr(ErrValidation, "La quantite doit etre superieure a 0")
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, newErr(ErrNotFound, "Produit introuvable")
		}
		return nil, false, err
	}

	item := &models.CartItem{
		UserID:    sess.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	created, err := s.Repo.AddToCart(ctx, item)
	if err != nil {
		return nil, false, err
	}
	return item, created, nil
}

// RemoveFromCart deletes one item, or clears the cart when itemID is nil.
func (s *CartService) RemoveFromCart(ctx context.Context, sess Session, itemID uuid.UUID) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	if itemID == uuid.Nil {
		return s.Repo.ClearCart(ctx, sess.UserID)
	}

	err := s.Repo.DeleteCartItem(ctx, sess.UserID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newErr(ErrNotFound, "Article introuvable")
	}
	return err
}
