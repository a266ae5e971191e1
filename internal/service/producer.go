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

type ProducerService struct {
	Repo *repo.GormRepo
}

func (s *ProducerService) ListProducers(ctx context.Context, onlyBio bool) ([]models.ProducerProfile, error) {
	return s.Repo.ListProducers(ctx, onlyBio)
}

func (s *ProducerService) GetProducer(ctx context.Context, id uuid.UUID) (*models.ProducerProfile, error) {
	p, err := s.Repo.GetProducer(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Producteur introuvable")
	}
	return p, err
}

func (s *ProducerService) PatchProducer(ctx context.Context, sess Session, id uuid.UUID, req transport.PatchProducerRequest) (*models.ProducerProfile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	p, err := s.GetProducer(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != sess.UserID {
		return nil, newErr(ErrForbidden, "Non autorise")
	}

	updates := map[string]any{}
	if req.BusinessName != nil {
		if *req.BusinessName == "" {
			return nil, newErr(ErrValidation, "Nom commercial requis")
		}
		updates["business_name"] = *req.BusinessName
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RegionID != nil {
		updates["region_id"] = *req.RegionID
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.IsCertifiedBio != nil {
		updates["is_certified_bio"] = *req.IsCertifiedBio
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	return s.Repo.UpdateProducer(ctx, id, updates)
}
