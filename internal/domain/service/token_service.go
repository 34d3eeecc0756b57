package service

import (
	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// Claims is the identity a validated token carries: who the caller is and
// what role they act under. Handlers put this on the request context.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
}

// TokenService defines the interface for issuing and validating session
// tokens. This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate issues a signed token for a user.
	Generate(user *entity.User) (string, error)

	// Validate checks a token string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
