package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/PaintToxic22/sistema-rastreo/internal/delivery/context"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/policy"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

const minPasswordLength = 6

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokens   service.TokenService
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for the user service, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenService
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokens:   params.Tokens,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a user and issues a session token. Public registration
// always yields a customer; privileged roles are granted through Update by
// an admin afterwards.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("nombre, email y password son requeridos"))
	}
	if len(input.Password) < minPasswordLength {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("password debe tener al menos 6 caracteres"))
	}

	role := entity.RoleCustomer
	if input.Role != "" {
		role = entity.Role(input.Role)
		if !role.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("rol no válido"))
		}
		if role != entity.RoleCustomer {
			return nil, domainerrors.ErrPermissionDenied.WrapMessage("public registration cannot grant privileged roles")
		}
	}

	email := entity.NormalizeEmail(input.Email)
	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, errors.WithStack(domainerrors.ErrEmailTaken)
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return nil, errors.WithStack(domainerrors.ErrEmailTaken)
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	token, err := srv.tokens.Generate(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Info("User registered", slog.String("email", user.Email), slog.String("role", user.Role.String()))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// Login checks credentials and issues a token. The invalid-email and
// wrong-password paths return the same error so the response does not leak
// which half failed.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("email y password son requeridos"))
	}

	user, err := srv.userRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}
	if !user.Active {
		return nil, errors.WithStack(domainerrors.ErrUserInactive)
	}

	token, err := srv.tokens.Generate(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Info("User logged in", slog.String("email", user.Email))

	return &usecase.AuthOutput{Token: token, User: user}, nil
}

// GetByID loads one user. Everyone may read their own profile; reading
// anyone else's requires the user administration capability.
func (srv *userService) GetByID(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.User, error) {
	if actor.ID != id && !policy.Allows(actor.Role, policy.ActionManageUsers) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot read other users")
	}

	return srv.findUser(ctx, id)
}

func (srv *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// List returns every user. Admin only.
func (srv *userService) List(ctx context.Context, actor usecase.Actor) ([]*entity.User, error) {
	if !policy.Allows(actor.Role, policy.ActionManageUsers) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot list users")
	}

	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// Update modifies a user. Admins touch anyone; everyone else only themselves,
// and never their own role or active flag.
func (srv *userService) Update(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	isAdmin := policy.Allows(actor.Role, policy.ActionManageUsers)
	if !isAdmin && actor.ID != id {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("users can only update themselves")
	}
	if !isAdmin && (input.Role != nil || input.Active != nil) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role and active flag are admin-only")
	}

	user, err := srv.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.Role != nil {
		role := entity.Role(*input.Role)
		if !role.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("rol no válido"))
		}
		user.Role = role
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Info("User updated", slog.String("email", user.Email), slog.String("actor", actor.Email))

	return user, nil
}

// Delete removes a user. Admin only; admins cannot delete themselves.
func (srv *userService) Delete(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	if !policy.Allows(actor.Role, policy.ActionManageUsers) {
		return domainerrors.ErrPermissionDenied.WrapMessage("role cannot delete users")
	}
	if actor.ID == id {
		return errors.WithStack(domainerrors.ErrValidation.WithDetails("no puedes eliminar tu propia cuenta"))
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("id", id.String()), slog.String("actor", actor.Email))

	return nil
}
