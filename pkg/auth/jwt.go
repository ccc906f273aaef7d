package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/patasfelizes/clinic-api/internal/model"
)

type JWTService interface {
	GenerateAccessToken(user *model.User) (string, error)
	GenerateRefreshToken(user *model.User) (string, error)
	ValidateToken(token string) (*model.TokenClaims, error)
	ValidateRefreshToken(token string) (*model.TokenClaims, error)
	AccessExpiry() time.Duration
}

type Config struct {
	Secret        string
	RefreshSecret string
	Expiry        time.Duration
	RefreshExpiry time.Duration
}

type jwtService struct {
	cfg Config
}

func NewJWTService(cfg Config) JWTService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	if cfg.RefreshExpiry <= 0 {
		cfg.RefreshExpiry = 7 * 24 * time.Hour
	}
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.Secret
	}
	return &jwtService{cfg: cfg}
}

func (s *jwtService) AccessExpiry() time.Duration {
	return s.cfg.Expiry
}

func (s *jwtService) GenerateAccessToken(user *model.User) (string, error) {
	return s.generate(user, s.cfg.Secret, s.cfg.Expiry)
}

func (s *jwtService) GenerateRefreshToken(user *model.User) (string, error) {
	return s.generate(user, s.cfg.RefreshSecret, s.cfg.RefreshExpiry)
}

func (s *jwtService) generate(user *model.User, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func (s *jwtService) ValidateToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, s.cfg.Secret)
}

func (s *jwtService) ValidateRefreshToken(token string) (*model.TokenClaims, error) {
	return s.validate(token, s.cfg.RefreshSecret)
}

func (s *jwtService) validate(tokenStr, secret string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &model.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
