package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
	pkg_hash "github.com/Skotchmaster/agrilink/pkg/hash"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	"github.com/Skotchmaster/agrilink/pkg/tokens"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type LoginResult struct {
	tokens.Pair
	UserID uuid.UUID
	Role   string
}

func (s *AuthService) ttls() (time.Duration, time.Duration) {
	access, refresh := s.AccessTTL, s.RefreshTTL
	if access <= 0 {
		access = 15 * time.Minute
	}
	if refresh <= 0 {
		refresh = 7 * 24 * time.Hour
	}
	return access, refresh
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.Profile, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, newErr(ErrValidation, "Email, mot de passe et nom requis")
	}
	if len(req.Password) < 6 {
		return nil, newErr(ErrValidation, "Le mot de passe doit contenir au moins 6 caracteres")
	}
	if req.Role != models.RoleConsumer && req.Role != models.RoleProducer {
		return nil, newErr(ErrValidation, "Role invalide")
	}
	if req.Role == models.RoleProducer && strings.TrimSpace(req.BusinessName) == "" {
		return nil, newErr(ErrValidation, "Nom commercial requis pour un producteur")
	}

	pwHash, err := pkg_hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	profile := &models.Profile{
		Email:        email,
		PasswordHash: pwHash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Role:         req.Role,
	}
	var producer *models.ProducerProfile
	if req.Role == models.RoleProducer {
		producer = &models.ProducerProfile{
			BusinessName: strings.TrimSpace(req.BusinessName),
			IsActive:     true,
		}
	}

	if err := s.Repo.CreateProfile(ctx, profile, producer); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_error", "status", 409, "reason", "email already used")
			return nil, newErr(ErrConflict, "Cet email est deja utilise")
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, newErr(ErrValidation, "Email et mot de passe requis")
	}

	user, err := s.Repo.GetProfileByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrUnauthenticated, "Identifiants invalides")
	}
	if err != nil {
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "status", 401, "reason", "invalid email or password")
		return nil, newErr(ErrUnauthenticated, "Identifiants invalides")
	}

	pair, next, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.CreateRefreshToken(ctx, next); err != nil {
		return nil, err
	}

	return &LoginResult{Pair: *pair, UserID: user.ID, Role: user.Role}, nil
}

// Refresh rotates refreshToken: it is revoked and a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, newErr(ErrUnauthenticated, "Non authentifie")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, newErr(ErrUnauthenticated, "Non authentifie")
	}

	user, err := s.Repo.GetProfile(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrUnauthenticated, "Non authentifie")
	}
	if err != nil {
		return nil, err
	}

	pair, next, err := s.issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, next); err != nil {
		if errors.Is(err, repo.ErrTokenRevoked) {
			return nil, newErr(ErrUnauthenticated, "Non authentifie")
		}
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, tokens.Sha256Hex(refreshToken))
}

func (s *AuthService) issue(userID uuid.UUID, role string) (*tokens.Pair, *models.RefreshToken, error) {
	accessTTL, refreshTTL := s.ttls()
	now := time.Now().UTC()

	accessExp := now.Add(accessTTL)
	access, err := tokens.SignAccessToken(userID.String(), role, accessExp, s.JWTSecret)
	if err != nil {
		return nil, nil, err
	}

	refreshExp := now.Add(refreshTTL)
	refresh, jti, err := tokens.SignRefreshToken(userID.String(), refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, nil, err
	}

	pair := &tokens.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}
	row := &models.RefreshToken{
		UserID:    userID,
		JTI:       jti,
		TokenHash: tokens.Sha256Hex(refresh),
		ExpiresAt: refreshExp,
	}
	return pair, row, nil
}
