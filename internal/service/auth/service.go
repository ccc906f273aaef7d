package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/patasfelizes/clinic-api/internal/model"
	"github.com/patasfelizes/clinic-api/internal/repository"
	"github.com/patasfelizes/clinic-api/internal/service/audit"
	"github.com/patasfelizes/clinic-api/pkg/auth"
	apperrors "github.com/patasfelizes/clinic-api/pkg/errors"
	"github.com/patasfelizes/clinic-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Service is the session gate: Anonymous until a successful login,
// Authenticated until logout or token expiry. Credentials live in the
// seeded user registry as bcrypt hashes, never plaintext.
type Service struct {
	userRepo repository.UserRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
	revoked  *cache.Cache
	auditor  *audit.Service
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher, auditor *audit.Service) *Service {
	return &Service{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		hasher:   hasher,
		revoked:  cache.New(jwtSvc.AccessExpiry(), jwtSvc.AccessExpiry()),
		auditor:  auditor,
	}
}

// Login matches the email exactly (case-sensitive) and compares the
// password against the stored bcrypt hash. Both failure modes return
// the same error so the response does not leak which field was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewUnauthorized(ErrInvalidCredentials.Error())
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(ErrInvalidCredentials.Error())
	}

	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.auditor.Log(ctx, "login", "auth", user.ID, map[string]interface{}{"email": user.Email})
	return tokens, nil
}

// Logout revokes the presented token until it would have expired
// anyway. Unconditional: revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	s.revoked.SetDefault(token, true)

	if claims, err := s.jwtSvc.ValidateToken(token); err == nil {
		s.auditor.Log(ctx, "logout", "auth", claims.UserID, nil)
	}
	return nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("user not found")
	}

	return s.generateTokens(user)
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*model.TokenClaims, error) {
	if _, found := s.revoked.Get(token); found {
		return nil, apperrors.NewUnauthorized("token revoked")
	}
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewNotFound("user", err)
	}
	return user, nil
}

func (s *Service) generateTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwtSvc.AccessExpiry().Seconds()),
		User:         user,
	}, nil
}
