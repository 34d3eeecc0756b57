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

// FreightHandler holds dependencies for freight order handlers.
type FreightHandler struct {
	uc     usecase.FreightUsecase
	logger *slog.Logger
}

// NewFreightHandler is the constructor for FreightHandler, injected by Fx.
func NewFreightHandler(uc usecase.FreightUsecase, logger *slog.Logger) *FreightHandler {
	return &FreightHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles POST /ordenes.
func (h *FreightHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	var input usecase.CreateFreightOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de orden inválidos")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.Create(c.Request().Context(), actor, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Orden de flete registrada")
}

// List handles GET /ordenes with an optional limit param.
func (h *FreightHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	output, err := h.uc.List(c.Request().Context(), actor, intQueryParam(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// ChangeStatus handles PATCH /ordenes/:numero/estado.
func (h *FreightHandler) ChangeStatus(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	var input usecase.ChangeFreightStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Estado inválido")
	}

	order, err := h.uc.ChangeStatus(c.Request().Context(), actor, c.Param("numero"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Estado actualizado")
}
