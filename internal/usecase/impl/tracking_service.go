package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/PaintToxic22/sistema-rastreo/internal/delivery/context"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// trackingService implements the TrackingUsecase interface.
type trackingService struct {
	shipmentRepo repository.ShipmentRepository
	orderRepo    repository.FreightOrderRepository
	trackingRepo repository.TrackingRepository
	logger       *slog.Logger
}

// TrackingServiceParams holds dependencies for the tracking service, injected by Fx.
type TrackingServiceParams struct {
	fx.In

	ShipmentRepo repository.ShipmentRepository
	OrderRepo    repository.FreightOrderRepository
	TrackingRepo repository.TrackingRepository
	Logger       *slog.Logger
}

// NewTrackingService is the constructor for trackingService.
func NewTrackingService(params TrackingServiceParams) usecase.TrackingUsecase {
	return &trackingService{
		shipmentRepo: params.ShipmentRepo,
		orderRepo:    params.OrderRepo,
		trackingRepo: params.TrackingRepo,
		logger:       params.Logger,
	}
}

func (srv *trackingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve dispatches by prefix and returns the record with its full trail.
// Codes matching neither family fail with the format error, which carries the
// accepted formats so the public page can show them.
func (srv *trackingService) Resolve(ctx context.Context, code string) (*usecase.TrackingOutput, error) {
	kind, ok := entity.KindForCode(code)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrInvalidCodeFormat.WithDetails(
			"formatos aceptados: LQ000000000 (encomienda), OF-20240101-0001 (orden de flete)"))
	}

	var data any
	switch kind {
	case entity.KindShipment:
		shipment, err := srv.shipmentRepo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrShipmentNotFound) {
				return nil, errors.WithStack(domainerrors.ErrShipmentNotFound)
			}

			return nil, errors.Wrap(err, "failed to find shipment by code")
		}
		data = shipment
	case entity.KindFreightOrder:
		order, err := srv.orderRepo.FindByNumber(ctx, code)
		if err != nil {
			if errors.Is(err, repository.ErrFreightOrderNotFound) {
				return nil, errors.WithStack(domainerrors.ErrFreightOrderNotFound)
			}

			return nil, errors.Wrap(err, "failed to find freight order by number")
		}
		data = order
	}

	history, err := srv.trackingRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load tracking trail")
	}

	srv.log(ctx).Debug("Tracking code resolved", slog.String("code", code), slog.String("kind", string(kind)))

	return &usecase.TrackingOutput{Kind: kind, Data: data, History: history}, nil
}
