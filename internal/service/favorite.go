package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
)

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) ListFavorites(ctx context.Context, sess Session) ([]models.Favorite, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.Repo.ListFavorites(ctx, sess.UserID)
}

// ToggleFavorite adds the product to the caller's favorites or removes it
// when already there. The bool reports a removal.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, sess Session, productID uuid.UUID) (*models.Favorite, bool, error) {
	if err := requireSession(sess); err != nil {
		return nil, false, err
	}
	if productID == uuid.Nil {
		return nil, false, newErr(ErrValidation, "product_id requis")
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, newErr(ErrNotFound, "Produit introuvable")
		}
		return nil, false, err
	}
	return s.Repo.ToggleFavorite(ctx, sess.UserID, productID)
}
