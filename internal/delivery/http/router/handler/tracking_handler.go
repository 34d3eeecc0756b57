package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/response"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// TrackingHandler holds dependencies for the public tracking lookup.
type TrackingHandler struct {
	uc     usecase.TrackingUsecase
	logger *slog.Logger
}

// NewTrackingHandler is the constructor for TrackingHandler, injected by Fx.
func NewTrackingHandler(uc usecase.TrackingUsecase, logger *slog.Logger) *TrackingHandler {
	return &TrackingHandler{
		uc:     uc,
		logger: logger,
	}
}

// Track handles GET /tracking/:codigo. No authentication: anyone holding a
// code can follow the shipment or order behind it.
func (h *TrackingHandler) Track(c echo.Context) error {
	output, err := h.uc.Resolve(c.Request().Context(), c.Param("codigo"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
