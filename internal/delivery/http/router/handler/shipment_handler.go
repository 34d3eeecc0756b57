package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// ShipmentHandler holds dependencies for shipment lifecycle handlers.
type ShipmentHandler struct {
	uc     usecase.ShipmentUsecase
	logger *slog.Logger
}

// NewShipmentHandler is the constructor for ShipmentHandler, injected by Fx.
func NewShipmentHandler(uc usecase.ShipmentUsecase, logger *slog.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles POST /encomiendas.
func (h *ShipmentHandler) Create(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	var input usecase.CreateShipmentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de encomienda inválidos")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	shipment, err := h.uc.Create(c.Request().Context(), actor, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, shipment, "Encomienda registrada")
}

// List handles GET /encomiendas with optional estado, limit and skip params.
func (h *ShipmentHandler) List(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	input := usecase.ListShipmentsInput{
		Status: c.QueryParam("estado"),
		Limit:  intQueryParam(c, "limit"),
		Skip:   intQueryParam(c, "skip"),
	}

	output, err := h.uc.List(c.Request().Context(), actor, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Stats handles GET /encomiendas/estadisticas.
func (h *ShipmentHandler) Stats(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	stats, err := h.uc.Stats(c.Request().Context(), actor)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// GetByCode handles GET /encomiendas/codigo/:codigo. Public lookup.
func (h *ShipmentHandler) GetByCode(c echo.Context) error {
	shipment, err := h.uc.GetByCode(c.Request().Context(), c.Param("codigo"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shipment, "")
}

// GetByID handles GET /encomiendas/:id.
func (h *ShipmentHandler) GetByID(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseShipmentID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	shipment, err := h.uc.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shipment, "")
}

// ChangeStatus handles PATCH /encomiendas/:id/estado.
func (h *ShipmentHandler) ChangeStatus(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseShipmentID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.ChangeStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Estado inválido")
	}

	shipment, err := h.uc.ChangeStatus(c.Request().Context(), actor, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shipment, "Estado actualizado")
}

// AssignDriver handles PATCH /encomiendas/:id/asignar-chofer.
func (h *ShipmentHandler) AssignDriver(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseShipmentID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.AssignDriverInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Chofer inválido")
	}

	shipment, err := h.uc.AssignDriver(c.Request().Context(), actor, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shipment, "Chofer asignado")
}

// RecordDelivery handles PATCH /encomiendas/:id/entregar.
func (h *ShipmentHandler) RecordDelivery(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrAuthentication)
	}

	id, err := parseShipmentID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.RecordDeliveryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de entrega inválidos")
	}

	shipment, err := h.uc.RecordDelivery(c.Request().Context(), actor, id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shipment, "Entrega registrada")
}

func parseShipmentID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidation.WithDetails("id de encomienda no válido")
	}

	return id, nil
}

func intQueryParam(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || value < 0 {
		return 0
	}

	return value
}
