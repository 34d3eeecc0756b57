package impl

import (
	"context"
	"log/slog"
	"time"

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

// freightService implements the FreightUsecase interface.
type freightService struct {
	txManager repository.TransactionManager
	orderRepo repository.FreightOrderRepository
	notifier  service.Notifier
	logger    *slog.Logger
}

// FreightServiceParams holds dependencies for the freight service, injected by Fx.
type FreightServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.FreightOrderRepository
	Notifier  service.Notifier
	Logger    *slog.Logger
}

// NewFreightService is the constructor for freightService.
func NewFreightService(params FreightServiceParams) usecase.FreightUsecase {
	return &freightService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		notifier:  params.Notifier,
		logger:    params.Logger,
	}
}

func (srv *freightService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a freight order and opens its tracking trail. An order
// number is generated when the form left it empty.
func (srv *freightService) Create(ctx context.Context, actor usecase.Actor, input *usecase.CreateFreightOrderInput) (*entity.FreightOrder, error) {
	if !policy.Allows(actor.Role, policy.ActionCreate) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot create freight orders")
	}

	if input.SenderName == "" || input.SenderRUT == "" || input.RecipientName == "" || input.RecipientRUT == "" {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails(
			"remitente y destinatario requieren nombre y rut"))
	}
	if input.FreightValue < 0 || input.InsuranceValue < 0 {
		return nil, errors.WithStack(domainerrors.ErrValidation.WithDetails("los valores no pueden ser negativos"))
	}

	sender := entity.FreightParty{
		Name:    input.SenderName,
		RUT:     input.SenderRUT,
		Address: input.SenderAddress,
		Phone:   input.SenderPhone,
		Email:   input.SenderEmail,
	}
	recipient := entity.FreightParty{
		Name:    input.RecipientName,
		RUT:     input.RecipientRUT,
		Address: input.RecipientAddress,
		Phone:   input.RecipientPhone,
		Email:   input.RecipientEmail,
	}

	order := entity.NewFreightOrder(input.OrderNumber, sender, recipient, input.FreightValue, input.InsuranceValue, actor.ID)
	order.GoodsDescription = input.GoodsDescription
	order.Notes = input.Notes
	if input.OrderNumber == "" {
		order.OrderNumber = entity.NewFreightOrderNumber(order.IssuedAt)
		order.GenerationType = "automatica"
	}
	if input.GenerationType != "" {
		order.GenerationType = input.GenerationType
	}

	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if createErr := f.FreightOrderRepo().Create(ctx, order); createErr != nil {
			if errors.Is(createErr, domainerrors.ErrOrderNumberTaken) {
				return errors.WithStack(domainerrors.ErrOrderNumberTaken)
			}

			return errors.Wrap(createErr, "failed to create freight order")
		}

		return f.TrackingRepo().Append(ctx, &entity.TrackingEntry{
			TrackingCode: order.OrderNumber,
			Status:       order.Status.String(),
			Note:         "Orden de flete creada",
			ChangedAt:    order.IssuedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Freight order registered",
		slog.String("orderNumber", order.OrderNumber), slog.String("actor", actor.Email))
	if order.Recipient.Email != "" && srv.notifier != nil {
		if notifyErr := srv.notifier.NotifyRegistered(ctx, order.Recipient.Email, order.OrderNumber, entity.KindFreightOrder); notifyErr != nil {
			srv.log(ctx).Warn("Failed to queue registration notification",
				slog.String("orderNumber", order.OrderNumber), slog.Any("error", notifyErr))
		}
	}

	return order, nil
}

// List returns active orders, newest first.
func (srv *freightService) List(ctx context.Context, actor usecase.Actor, limit int) (*usecase.ListFreightOrdersOutput, error) {
	if !policy.Allows(actor.Role, policy.ActionView) {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot list freight orders")
	}

	items, err := srv.orderRepo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list freight orders")
	}

	return &usecase.ListFreightOrdersOutput{Items: items, Count: len(items)}, nil
}

// ChangeStatus transitions an order by its number. Freight orders accept any
// valid target status; the trail records every change.
func (srv *freightService) ChangeStatus(ctx context.Context, actor usecase.Actor, orderNumber string, input *usecase.ChangeFreightStatusInput) (*entity.FreightOrder, error) {
	if !policy.Allows(actor.Role, policy.ActionUpdateStatus) || actor.Role == entity.RoleDriver {
		return nil, domainerrors.ErrPermissionDenied.WrapMessage("role cannot change freight order status")
	}

	newStatus := entity.FreightOrderStatus(input.Status)
	if !newStatus.IsValid() {
		return nil, errors.WithStack(domainerrors.ErrInvalidStatus.WithDetails(input.Status))
	}

	var order *entity.FreightOrder
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var txErr error
		order, txErr = f.FreightOrderRepo().FindByNumber(ctx, orderNumber)
		if txErr != nil {
			if errors.Is(txErr, repository.ErrFreightOrderNotFound) {
				return errors.WithStack(domainerrors.ErrFreightOrderNotFound)
			}

			return errors.Wrap(txErr, "failed to find freight order")
		}

		order.Status = newStatus
		order.UpdatedAt = time.Now()
		if saveErr := f.FreightOrderRepo().Save(ctx, order); saveErr != nil {
			return errors.Wrap(saveErr, "failed to save freight order")
		}

		return f.TrackingRepo().Append(ctx, &entity.TrackingEntry{
			TrackingCode: order.OrderNumber,
			Status:       newStatus.String(),
			Note:         "Estado cambió a " + newStatus.String(),
			ChangedAt:    order.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Freight order status changed",
		slog.String("orderNumber", order.OrderNumber), slog.String("status", newStatus.String()), slog.String("actor", actor.Email))
	if order.Recipient.Email != "" && srv.notifier != nil {
		if notifyErr := srv.notifier.NotifyStatusChange(ctx, order.Recipient.Email, order.OrderNumber, newStatus.String(), entity.KindFreightOrder); notifyErr != nil {
			srv.log(ctx).Warn("Failed to queue status notification",
				slog.String("orderNumber", order.OrderNumber), slog.Any("error", notifyErr))
		}
	}

	return order, nil
}
