// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles POST /registro.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de registro inválidos")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Usuario registrado correctamente")
}

// Login handles POST /login.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de acceso inválidos")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Sesión iniciada")
}

// Me handles GET /me: it returns the profile behind the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	user, err := h.uc.GetByID(c.Request().Context(), actor, actor.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Logout handles POST /logout. Sessions are stateless bearer tokens, so the
// server only acknowledges; the client discards the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "Sesión cerrada")
}
