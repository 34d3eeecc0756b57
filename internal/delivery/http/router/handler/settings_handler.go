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

// SettingsHandler holds dependencies for runtime configuration handlers.
type SettingsHandler struct {
	uc     usecase.SettingsUsecase
	logger *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		uc:     uc,
		logger: logger,
	}
}

// All handles GET /configuracion. Public, the frontend reads branding and
// pricing values before anyone logs in.
func (h *SettingsHandler) All(c echo.Context) error {
	values, err := h.uc.All(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, values, "")
}

// Update handles PUT /configuracion.
func (h *SettingsHandler) Update(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	var values map[string]string
	if err := c.Bind(&values); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de configuración inválidos")
	}

	if err := h.uc.Update(c.Request().Context(), actor, values); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Configuración actualizada")
}
