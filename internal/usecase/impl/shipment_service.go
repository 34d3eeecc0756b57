// Package impl contains the implementation of the application's business logic.
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

// shipmentService implements the ShipmentUsecase interface.
type shipmentService struct {
	txManager    repository.TransactionManager
	shipmentRepo repository.ShipmentRepository
	transitions  entity.TransitionPolicy
	notifier     service.Notifier
	logger       *slog.Logger
}

// ShipmentServiceParams holds dependencies for the shipment service, injected by Fx.
type ShipmentServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ShipmentRepo repository.ShipmentRepository
	Transitions  entity.TransitionPolicy
	Notifier     service.Notifier
	Logger       *slog.Logger
}

// NewShipmentService is the constructor for shipmentService.
func NewShipmentService(params ShipmentServiceParams) usecase.ShipmentUsecase {
	return &shipmentService{
		txManager:    params.TxManager,
		shipmentRepo: params.ShipmentRepo,
		transitions:  params.Transitions,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *shipmentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a new shipment with its first history entry and opens the
// public tracking trail for its code.
func (srv *shipmentService) Create(ctx context.Context, actor usecase.Actor, input *usecase.CreateShipmentInput) (*entity.Shipment, error) {
	if !policy.Allows(actor.Role, policy.ActionCreate) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot create shipments")
	}

	if input.SenderName == "" || input.RecipientName == "" || input.RecipientAddress == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails(
			"remitente_nombre, destinatario_nombre y destinatario_direccion son requeridos"))
	}
	if input.DeclaredValue < 0 {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("valor_declarado no puede ser negativo"))
	}

	sender := entity.Party{
		Name:    input.SenderName,
		Email:   input.SenderEmail,
		Phone:   input.SenderPhone,
		Address: input.SenderAddress,
		RUT:     input.SenderRUT,
	}
	recipient := entity.Party{
		Name:    input.RecipientName,
		Email:   input.RecipientEmail,
		Phone:   input.RecipientPhone,
		Address: input.RecipientAddress,
		City:    input.RecipientCity,
		RUT:     input.RecipientRUT,
	}

	shipment := entity.NewShipment(entity.NewShipmentCode(), sender, recipient, input.DeclaredValue, actor.ID, actor.Email)

	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.ShipmentRepo().Create(ctx, shipment); err != nil {
			return errors.Wrap(err, "failed to create shipment")
		}

		return f.TrackingRepo().Append(ctx, &entity.TrackingEntry{
			TrackingCode: shipment.Code,
			Status:       shipment.Status.String(),
			Note:         shipment.LastChange().Note,
			ChangedAt:    shipment.LastChange().ChangedAt,
		})
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register shipment", slog.String("code", shipment.Code), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute shipment creation transaction")
	}

	srv.log(ctx).Info("Shipment registered",
		slog.String("code", shipment.Code), slog.String("actor", actor.Email))
	srv.notifyRegistered(ctx, shipment)

	return shipment, nil
}

// GetByID loads one shipment, enforcing the caller's ownership scope.
func (srv *shipmentService) GetByID(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Shipment, error) {
	if !policy.Allows(actor.Role, policy.ActionView) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot view shipments")
	}

	shipment, err := srv.findShipment(ctx, srv.shipmentRepo, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccessShipment(actor.Role, actor.ID, shipment) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("shipment is outside the caller's scope")
	}

	return shipment, nil
}

// GetByCode is the public lookup used by GET /encomiendas/codigo/:codigo.
func (srv *shipmentService) GetByCode(ctx context.Context, code string) (*entity.Shipment, error) {
	shipment, err := srv.shipmentRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrShipmentNotFound) {
			return nil, errors.WithStack(domainerrors.ErrShipmentNotFound)
		}

		return nil, errors.Wrap(err, "failed to find shipment by code")
	}

	return shipment, nil
}

// ChangeStatus transitions a shipment. The status set, the history append and
// the tracking trail append commit as one transaction.
func (srv *shipmentService) ChangeStatus(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.ChangeStatusInput) (*entity.Shipment, error) {
	if !policy.Allows(actor.Role, policy.ActionUpdateStatus) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot change shipment status")
	}
	if input.Status == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("estado es requerido"))
	}

	newStatus := entity.ShipmentStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(input.Status))
	}

	var shipment *entity.Shipment
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var txErr error
		shipment, txErr = srv.findShipment(ctx, f.ShipmentRepo(), id)
		if txErr != nil {
			return txErr
		}

		if policy.ScopedToOwn(actor.Role) && !policy.OwnsShipment(actor.Role, actor.ID, shipment) {
			return domainerrors.ErrPermissionDenied.WrapMessage("shipment is not assigned to the caller")
		}

		if applyErr := shipment.ApplyStatus(newStatus, srv.transitions, actor.Email); applyErr != nil {
			return errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(applyErr.Error()))
		}

		return srv.saveWithTrail(ctx, f, shipment)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Shipment status changed",
		slog.String("code", shipment.Code), slog.String("status", newStatus.String()), slog.String("actor", actor.Email))
	srv.notifyStatus(ctx, shipment)

	return shipment, nil
}

// AssignDriver links a driver to the shipment and moves it into transit. The
// referenced user must exist and hold the driver role.
func (srv *shipmentService) AssignDriver(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.AssignDriverInput) (*entity.Shipment, error) {
	if !policy.Allows(actor.Role, policy.ActionAssignDriver) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot assign drivers")
	}
	if input.DriverID == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("chofer_id es requerido"))
	}

	driverID, err := uuid.Parse(input.DriverID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("chofer_id no es un identificador válido"))
	}

	var shipment *entity.Shipment
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var txErr error
		shipment, txErr = srv.findShipment(ctx, f.ShipmentRepo(), id)
		if txErr != nil {
			return txErr
		}

		driver, findErr := f.UserRepo().FindByID(ctx, driverID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.WithStack(domainerrors.ErrDriverNotFound)
			}

			return errors.Wrap(findErr, "failed to load driver")
		}
		if !driver.IsDriver() {
			return errors.WithStack(domainerrors.ErrDriverNotFound.WithDetails("el usuario no tiene rol chofer"))
		}

		if assignErr := shipment.AssignDriver(driver, srv.transitions, actor.Email); assignErr != nil {
			return errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(assignErr.Error()))
		}

		return srv.saveWithTrail(ctx, f, shipment)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Driver assigned",
		slog.String("code", shipment.Code), slog.String("driver", shipment.DriverName), slog.String("actor", actor.Email))
	srv.notifyStatus(ctx, shipment)

	return shipment, nil
}

// RecordDelivery writes the proof of delivery. Only the driver in the field
// records a delivery; this is stricter than the capability table on purpose,
// because the signature must come from whoever handed the parcel over.
func (srv *shipmentService) RecordDelivery(ctx context.Context, actor usecase.Actor, id uuid.UUID, input *usecase.RecordDeliveryInput) (*entity.Shipment, error) {
	if actor.Role != entity.RoleDriver {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("only drivers record deliveries")
	}
	if input.ReceivedBy == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("persona_recibe es requerido"))
	}

	var shipment *entity.Shipment
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var txErr error
		shipment, txErr = srv.findShipment(ctx, f.ShipmentRepo(), id)
		if txErr != nil {
			return txErr
		}

		if !policy.OwnsShipment(actor.Role, actor.ID, shipment) {
			return domainerrors.ErrPermissionDenied.WrapMessage("shipment is not assigned to the caller")
		}

		if deliverErr := shipment.RecordDelivery(input.ReceivedBy, input.RUT, input.Notes, srv.transitions, actor.Email); deliverErr != nil {
			return errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(deliverErr.Error()))
		}

		return srv.saveWithTrail(ctx, f, shipment)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Delivery recorded",
		slog.String("code", shipment.Code), slog.String("receivedBy", input.ReceivedBy), slog.String("actor", actor.Email))
	srv.notifyStatus(ctx, shipment)

	return shipment, nil
}

// List returns the caller's visible page: drivers see assigned shipments,
// customers the ones they registered, operators and admins everything.
func (srv *shipmentService) List(ctx context.Context, actor usecase.Actor, input *usecase.ListShipmentsInput) (*usecase.ListShipmentsOutput, error) {
	if !policy.Allows(actor.Role, policy.ActionView) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot list shipments")
	}

	filter := repository.ShipmentFilter{
		Limit:  input.Limit,
		Offset: input.Skip,
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if input.Status != "" {
		status := entity.ShipmentStatus(input.Status)
		if !status.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(input.Status))
		}
		filter.Status = &status
	}

	switch actor.Role {
	case entity.RoleDriver:
		driverID := actor.ID
		filter.DriverID = &driverID
	case entity.RoleCustomer:
		registeredBy := actor.ID
		filter.RegisteredBy = &registeredBy
	}

	items, total, err := srv.shipmentRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shipments")
	}

	return &usecase.ListShipmentsOutput{
		Items: items,
		Total: total,
		Limit: filter.Limit,
		Skip:  filter.Offset,
	}, nil
}

// Stats returns the dashboard counters.
func (srv *shipmentService) Stats(ctx context.Context, actor usecase.Actor) (*usecase.ShipmentStatsOutput, error) {
	if !policy.Allows(actor.Role, policy.ActionView) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot view statistics")
	}

	stats, err := srv.shipmentRepo.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shipment stats")
	}

	return &usecase.ShipmentStatsOutput{
		Total:      stats.Total,
		Registered: stats.ByStatus[entity.ShipmentRegistered],
		InTransit:  stats.ByStatus[entity.ShipmentInTransit],
		Delivered:  stats.ByStatus[entity.ShipmentDelivered],
	}, nil
}

// findShipment loads a shipment through the given repository, translating the
// storage sentinel into the domain error.
func (srv *shipmentService) findShipment(ctx context.Context, repo repository.ShipmentRepository, id uuid.UUID) (*entity.Shipment, error) {
	shipment, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShipmentNotFound) {
			return nil, errors.WithStack(domainerrors.ErrShipmentNotFound)
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return shipment, nil
}

// saveWithTrail persists the shipment and mirrors its latest history entry
// into the public tracking trail, inside the caller's transaction.
func (srv *shipmentService) saveWithTrail(ctx context.Context, f repository.RepositoryFactory, shipment *entity.Shipment) error {
	if err := f.ShipmentRepo().Save(ctx, shipment); err != nil {
		return errors.Wrap(err, "failed to save shipment")
	}

	last := shipment.LastChange()

	return f.TrackingRepo().Append(ctx, &entity.TrackingEntry{
		TrackingCode: shipment.Code,
		Status:       last.Status.String(),
		Note:         last.Note,
		ChangedAt:    last.ChangedAt,
	})
}

// Notification is fire-and-forget: the dispatcher queues the message and the
// caller's response never waits on SMTP. Failures are logged, never returned.
func (srv *shipmentService) notifyRegistered(ctx context.Context, shipment *entity.Shipment) {
	if srv.notifier == nil {
		return
	}

	// Both parties get the registration email; everything after that only
	// concerns the recipient.
	recipients := make([]string, 0, 2)
	if shipment.Recipient.Email != "" {
		recipients = append(recipients, shipment.Recipient.Email)
	}
	if shipment.Sender.Email != "" && shipment.Sender.Email != shipment.Recipient.Email {
		recipients = append(recipients, shipment.Sender.Email)
	}

	for _, to := range recipients {
		if err := srv.notifier.NotifyRegistered(ctx, to, shipment.Code, entity.KindShipment); err != nil {
			srv.log(ctx).Warn("Failed to queue registration notification",
				slog.String("code", shipment.Code), slog.Any("error", err))
		}
	}
}

func (srv *shipmentService) notifyStatus(ctx context.Context, shipment *entity.Shipment) {
	if srv.notifier == nil || shipment.Recipient.Email == "" {
		return
	}

	if err := srv.notifier.NotifyStatusChange(ctx, shipment.Recipient.Email, shipment.Code, shipment.Status.String(), entity.KindShipment); err != nil {
		srv.log(ctx).Warn("Failed to queue status notification",
			slog.String("code", shipment.Code), slog.Any("error", err))
	}
}
