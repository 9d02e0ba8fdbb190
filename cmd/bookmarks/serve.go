package main

import (
	"context"
	"log/slog"

	"bookmarks/internal/delivery"
	"bookmarks/internal/delivery/api"
	apimiddleware "bookmarks/internal/delivery/api/middleware"
	"bookmarks/internal/delivery/api/router/handler"
	"bookmarks/internal/domain/service"
	"bookmarks/internal/infra/auth"
	logs "bookmarks/internal/infra/log"
	"bookmarks/internal/infra/metrics"
	"bookmarks/internal/infra/persistence/migrations"
	"bookmarks/internal/infra/persistence/postgres"
	"bookmarks/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. The process connects to PostgreSQL, applies
pending migrations when postgres.autoMigrate is set, and serves until
it receives SIGINT or SIGTERM.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := newApp()
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()

			return nil
		},
	}
}

func newApp() *fx.App {
	return fx.New(appOptions()...)
}

func appOptions() []fx.Option {
	return []fx.Option{
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: logger}
			fxLogger.UseLogLevel(slog.LevelDebug)

			return fxLogger
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			migrations.RegisterAutoMigrate,
			startServer,
		),
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		loadConfig,
		logs.New,
		postgres.New,
		newDatabasePinger,
		fx.Annotate(
			metrics.NewRegistry,
			fx.As(new(prometheus.Registerer)),
			fx.As(new(prometheus.Gatherer)),
		),
		fx.Annotate(
			metrics.NewCollector,
			fx.As(new(service.AuthMetrics)),
			fx.As(new(apimiddleware.RequestRecorder)),
		),
	)
}

// newDatabasePinger exposes the primary connection pool to the health check.
func newDatabasePinger(db *gorm.DB) (handler.Pinger, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return sqlDB, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewBookmarkRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewArgon2Hasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewIdentityService,
			impl.NewProfileService,
			impl.NewBookmarkService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewBookmarkHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every delivery once the earlier start hooks (database
// ping, migrations) have succeeded. A delivery that fails shuts the app down.
func startServer(params startServerParams) {
	params.Append(fx.StartHook(func() {
		for _, d := range params.Deliveries {
			go func() {
				if err := d.Serve(context.Background()); err != nil {
					params.Logger.Error("Failed to start server", slog.Any("error", err))
					_ = params.Shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
		}
	}))
}
