package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

func newUserService(repo *memUserRepo) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		UserRepo: repo,
		Hasher:   fakeHasher{},
		Tokens:   fakeTokens{},
		Logger:   discardLogger(),
	})
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	out, err := service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Ana Soto",
		Email:    "  Ana@Example.COM ",
		Password: "secreto1",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-ana@example.com", out.Token)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.True(t, out.User.Active)

	stored, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:secreto1", stored.PasswordHash)
}

func TestUserServiceRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	service := newUserService(newMemUserRepo())

	input := &usecase.RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secreto1"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	input.Email = "ANA@example.com"
	_, err = service.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserServiceRegisterValidation(t *testing.T) {
	t.Parallel()

	service := newUserService(newMemUserRepo())

	cases := []usecase.RegisterInput{
		{Email: "a@b.cl", Password: "secreto1"},
		{Name: "Ana", Password: "secreto1"},
		{Name: "Ana", Email: "a@b.cl"},
		{Name: "Ana", Email: "a@b.cl", Password: "corta"},
		{Name: "Ana", Email: "a@b.cl", Password: "secreto1", Role: "gerente"},
	}
	for _, input := range cases {
		_, err := service.Register(context.Background(), &input)
		assert.ErrorIs(t, err, domainerrors.ErrValidation)
	}
}

func TestUserServiceRegisterRejectsPrivilegedRoles(t *testing.T) {
	t.Parallel()

	service := newUserService(newMemUserRepo())

	for _, role := range []string{"admin", "operador", "chofer"} {
		_, err := service.Register(context.Background(), &usecase.RegisterInput{
			Name: "Ana", Email: "ana@example.com", Password: "secreto1", Role: role,
		})
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied, "role %s", role)
	}

	out, err := service.Register(context.Background(), &usecase.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1", Role: "usuario",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	_, err := service.Register(context.Background(), &usecase.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Password: "secreto1",
	})
	require.NoError(t, err)

	out, err := service.Login(context.Background(), &usecase.LoginInput{Email: "Ana@Example.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "token-ana@example.com", out.Token)

	_, err = service.Login(context.Background(), &usecase.LoginInput{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &usecase.LoginInput{Email: "nadie@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserServiceLoginRejectsInactive(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	user := &entity.User{
		ID: uuid.New(), Name: "Ana", Email: "ana@example.com",
		PasswordHash: "hashed:secreto1", Role: entity.RoleCustomer, Active: false,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	_, err := service.Login(context.Background(), &usecase.LoginInput{Email: "ana@example.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domainerrors.ErrUserInactive)
}

func TestUserServiceUpdatePermissions(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	user := &entity.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: entity.RoleCustomer, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))

	self := usecase.Actor{ID: user.ID, Email: user.Email, Role: user.Role}
	newName := "Ana María"
	updated, err := service.Update(context.Background(), self, user.ID, &usecase.UpdateUserInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)

	adminRole := "admin"
	_, err = service.Update(context.Background(), self, user.ID, &usecase.UpdateUserInput{Role: &adminRole})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	other := usecase.Actor{ID: uuid.New(), Email: "otro@example.com", Role: entity.RoleCustomer}
	_, err = service.Update(context.Background(), other, user.ID, &usecase.UpdateUserInput{Name: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	admin := usecase.Actor{ID: uuid.New(), Email: "admin@lonqui.cl", Role: entity.RoleAdmin}
	driverRole := "chofer"
	inactive := false
	updated, err = service.Update(context.Background(), admin, user.ID, &usecase.UpdateUserInput{Role: &driverRole, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDriver, updated.Role)
	assert.False(t, updated.Active)
}

func TestUserServiceGetByIDIsScopedToSelfOrAdmin(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	admin := &entity.User{
		ID: uuid.New(), Name: "Admin", Email: "admin@lonqui.cl",
		Phone: "+56 9 8765 4321", Role: entity.RoleAdmin, Active: true,
	}
	require.NoError(t, repo.Create(context.Background(), admin))

	customer := usecase.Actor{ID: uuid.New(), Email: "cliente@example.com", Role: entity.RoleCustomer}
	_, err := service.GetByID(context.Background(), customer, admin.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	self := &entity.User{ID: customer.ID, Name: "Cliente", Email: customer.Email, Role: entity.RoleCustomer, Active: true}
	require.NoError(t, repo.Create(context.Background(), self))

	got, err := service.GetByID(context.Background(), customer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.Email, got.Email)

	adminActor := usecase.Actor{ID: admin.ID, Email: admin.Email, Role: entity.RoleAdmin}
	got, err = service.GetByID(context.Background(), adminActor, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente", got.Name)
}

func TestUserServiceListAndDeleteAreAdminOnly(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	service := newUserService(repo)

	user := &entity.User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", Role: entity.RoleOperator, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))

	operator := usecase.Actor{ID: user.ID, Email: user.Email, Role: entity.RoleOperator}
	_, err := service.List(context.Background(), operator)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	err = service.Delete(context.Background(), operator, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	admin := usecase.Actor{ID: uuid.New(), Email: "admin@lonqui.cl", Role: entity.RoleAdmin}
	users, err := service.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, service.Delete(context.Background(), admin, user.ID))
	err = service.Delete(context.Background(), admin, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserServiceDeleteRejectsSelf(t *testing.T) {
	t.Parallel()

	service := newUserService(newMemUserRepo())
	admin := usecase.Actor{ID: uuid.New(), Email: "admin@lonqui.cl", Role: entity.RoleAdmin}

	err := service.Delete(context.Background(), admin, admin.ID)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
