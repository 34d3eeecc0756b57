package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/PaintToxic22/sistema-rastreo/internal/delivery/context"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/policy"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	txManager    repository.TransactionManager
	settingsRepo repository.SettingsRepository
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for the settings service, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	SettingsRepo repository.SettingsRepository
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		txManager:    params.TxManager,
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger,
	}
}

// All returns every configuration pair.
func (srv *settingsService) All(ctx context.Context) (map[string]string, error) {
	values, err := srv.settingsRepo.All(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}

	return values, nil
}

// Update upserts the given pairs atomically. Admin only.
func (srv *settingsService) Update(ctx context.Context, actor usecase.Actor, values map[string]string) error {
	if !policy.Allows(actor.Role, policy.ActionManageSettings) {
		return domainerrors.ErrPermissionDenied.WrapMessage("role cannot change settings")
	}
	if len(values) == 0 {
		return errors.WithStack(domainerrors.ErrValidation.WithDetails("no hay valores para actualizar"))
	}

	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		for key, value := range values {
			if key == "" {
				return errors.WithStack(domainerrors.ErrValidation.WithDetails("las claves no pueden ser vacías"))
			}
			if upsertErr := f.SettingsRepo().Upsert(ctx, key, value, actor.ID); upsertErr != nil {
				return errors.Wrap(upsertErr, "failed to upsert setting")
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Settings updated",
		slog.Int("count", len(values)), slog.String("actor", actor.Email))

	return nil
}
