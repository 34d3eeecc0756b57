package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/PaintToxic22/sistema-rastreo/config"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/router/handler"
	deliverymiddleware "github.com/PaintToxic22/sistema-rastreo/internal/delivery/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/auth"
	logs "github.com/PaintToxic22/sistema-rastreo/internal/infra/log"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/mail"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/persistence/postgres"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewShipmentRepository,
			postgres.NewFreightOrderRepository,
			postgres.NewTrackingRepository,
			postgres.NewSettingsRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			entity.PermissiveTransitions,
			newNotifier,
		),
	)
}

// newNotifier builds the email notifier and ties its background dispatcher to
// the application lifecycle. Without SMTP configuration it degrades to a
// log-only notifier with no dispatcher to manage.
func newNotifier(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) service.Notifier {
	notifier := mail.NewNotifier(cfg, logger)

	if dispatcher := mail.DispatcherOf(notifier); dispatcher != nil {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				dispatcher.Start()

				return nil
			},
			OnStop: func(context.Context) error {
				dispatcher.Stop()

				return nil
			},
		})
	}

	return notifier
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewShipmentService,
			impl.NewFreightService,
			impl.NewTrackingService,
			impl.NewSettingsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewShipmentHandler,
			handler.NewFreightHandler,
			handler.NewTrackingHandler,
			handler.NewSettingsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
