package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// UserHandler holds dependencies for user administration handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles GET /usuarios.
func (h *UserHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	users, err := h.uc.List(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// GetByID handles GET /usuarios/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Update handles PUT /usuarios/:id.
func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de usuario inválidos")
	}

	user, err := h.uc.Update(c.Request().Context(), actor, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Usuario actualizado")
}

// Delete handles DELETE /usuarios/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Usuario eliminado")
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidation.WithDetails("id de usuario no válido")
	}

	return id, nil
}
