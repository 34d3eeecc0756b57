// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/PaintToxic22/sistema-rastreo/config"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	apperrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Secret key for signing tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: cfg.Auth.Secret,
		ttl:    cfg.Auth.TokenTTL,
	}, nil
}

// Generate creates a signed session token carrying the user's identity and role.
func (s *jwtService) Generate(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),      // Subject (who the token is for)
		"email": user.Email,            // Login identity
		"rol":   user.Role.String(),    // Role for stateless authorization
		"iat":   now.Unix(),            // Issued At
		"exp":   now.Add(s.ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// Validate checks a token string and extracts its claims. Expired, malformed
// and wrongly signed tokens all map to the same authentication error.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.WithStack(apperrors.ErrAuthentication)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.WithStack(apperrors.ErrAuthentication)
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.WithStack(apperrors.ErrAuthentication)
	}

	email, _ := mapClaims["email"].(string)
	roleStr, _ := mapClaims["rol"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, errors.WithStack(apperrors.ErrAuthentication)
	}

	return &service.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
