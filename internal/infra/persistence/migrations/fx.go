package migrations

import (
	"context"
	"log/slog"

	"bookmarks/config"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// AutoMigrateParams depends on *gorm.DB so the hook runs after the startup ping.
type AutoMigrateParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// RegisterAutoMigrate applies pending migrations on start when postgres.autoMigrate is set.
func RegisterAutoMigrate(params AutoMigrateParams) {
	if !params.Config.Postgres.AutoMigrate {
		return
	}

	params.Append(fx.StartHook(func(ctx context.Context) error {
		migrator, err := NewMigrator(params.Config.Postgres.URL())
		if err != nil {
			return err
		}
		defer migrator.Close()

		if err := migrator.Up(); err != nil {
			return err
		}

		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		params.Logger.InfoContext(ctx, "Schema migrated", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))

		return nil
	}))
}
