package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// RegisterInput carries the registration form. Role defaults to customer and
// is the only role public registration accepts.
type RegisterInput struct {
	Name     string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"rol" validate:"omitempty,oneof=usuario"`
}

// LoginInput carries the credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput carries the mutable user fields. Nil pointers are left
// untouched.
type UpdateUserInput struct {
	Name    *string `json:"nombre"`
	Phone   *string `json:"telefono"`
	Address *string `json:"direccion"`
	City    *string `json:"ciudad"`
	Role    *string `json:"rol"`
	Active  *bool   `json:"activo"`
}

// AuthOutput is what login and registration return: a bearer token plus the
// user it belongs to. The user never carries the password hash outward.
type AuthOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// UserUsecase owns identity: registration, login and user administration.
type UserUsecase interface {
	// Register creates a user and issues a token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login checks credentials and issues a token. Inactive users are rejected.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GetByID loads one user. Self-lookup is always allowed; reading anyone
	// else's profile is admin-only.
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*entity.User, error)

	// List returns every user. Admin only.
	List(ctx context.Context, actor Actor) ([]*entity.User, error)

	// Update modifies a user. Admins may update anyone; others only themselves,
	// and never their own role or active flag.
	Update(ctx context.Context, actor Actor, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// Delete removes a user. Admin only.
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}
