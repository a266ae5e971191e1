package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
)

type ProfileService struct {
	Repo *repo.GormRepo
}

// GetProfile returns the caller's profile; producers get their business
// profile embedded.
func (s *ProfileService) GetProfile(ctx context.Context, sess Session) (*models.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	p, err := s.Repo.GetProfile(ctx, sess.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Profil introuvable")
	}
	if err != nil {
		return nil, err
	}
	if p.Role != models.RoleProducer {
		p.ProducerProfile = nil
	}
	return p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, sess Session, req transport.UpdateProfileRequest) (*models.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, newErr(ErrValidation, "Nom complet requis")
		}
		updates["full_name"] = name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if _, err := s.Repo.UpdateProfile(ctx, sess.UserID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newErr(ErrNotFound, "Profil introuvable")
		}
		return nil, err
	}
	return s.GetProfile(ctx, sess)
}
