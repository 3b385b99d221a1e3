package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"stampcard/internal/shared/config"
	"stampcard/internal/shared/middleware"
)

var (
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AdminSubject is the token subject for the shared admin credential
const AdminSubject = "admin"

type Service interface {
	AdminLogin(ctx context.Context, req *AdminLoginRequest) (*TokenResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	config *config.Config
	now    func() time.Time
}

func NewService(cfg *config.Config) Service {
	return &service{
		config: cfg,
		now:    time.Now,
	}
}

func (s *service) AdminLogin(_ context.Context, req *AdminLoginRequest) (*TokenResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.Draw.AdminPassword)) != 1 {
		return nil, ErrInvalidCredentials
	}

	return s.generateAccessToken(AdminSubject, middleware.RoleAdmin)
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *service) generateAccessToken(subject, role string) (*TokenResponse, error) {
	now := s.now()

	claims := JWTClaims{
		Role: role,
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "stampcard",
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		Role:        role,
		ExpiresIn:   int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}
