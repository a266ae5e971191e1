package service

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/agrilink/internal/models"
)

// Session is the authenticated caller of a request.
type Session struct {
	UserID uuid.UUID
	Role   string
}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

func (s Session) IsProducer() bool {
	return s.Role == models.RoleProducer
}

func requireSession(s Session) error {
	if !s.Authenticated() {
		return newErr(ErrUnauthenticated, "Non authentifie")
	}
	return nil
}
