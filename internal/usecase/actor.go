// Package usecase defines the application's use case interfaces and the
// input/output DTOs the HTTP layer binds to.
package usecase

import (
	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// Actor is the authenticated caller of an operation, rebuilt from the
// validated token claims by the auth middleware.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  entity.Role
}
