package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/events"
)

type ReviewService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *ReviewService) ListReviews(ctx context.Context, producerID uuid.UUID) ([]models.Review, error) {
	if producerID == uuid.Nil {
		return nil, newErr(ErrValidation, "producer_id requis")
	}
	return s.Repo.ListReviews(ctx, producerID)
}

// CreateReview accepts one review per delivered order of the caller and
// refreshes the producer's rating.
func (s *ReviewService) CreateReview(ctx context.Context, sess Session, req transport.CreateReviewRequest) (*models.Review, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, newErr(ErrValidation, "La note doit etre entre 1 et 5")
	}

	order, err := s.Repo.GetOrder(ctx, req.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Commande introuvable")
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != sess.UserID {
		return nil, newErr(ErrNotFound, "Commande introuvable")
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, newErr(ErrValidation, "La commande doit etre livree pour laisser un avis")
	}

	exists, err := s.Repo.ReviewExists(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newErr(ErrValidation, "Vous avez deja laisse un avis pour cette commande")
	}

	review := &models.Review{
		OrderID:    order.ID,
		ReviewerID: sess.UserID,
		ProducerID: order.ProducerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, newErr(ErrValidation, "Vous avez deja laisse un avis pour cette commande")
		}
		return nil, err
	}

	publish(ctx, s.Events, events.TopicReviews, review.ProducerID.String(), map[string]any{
		"type":        "review_created",
		"review_id":   review.ID,
		"producer_id": review.ProducerID,
		"rating":      review.Rating,
	})
	return review, nil
}
