package main

import (
	"strconv"

	"bookmarks/internal/errors"
	"bookmarks/internal/infra/persistence/migrations"

	"github.com/spf13/cobra"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  `Apply or roll back the embedded SQL migrations against the configured PostgreSQL database.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator, _ []string) error {
			if err := m.Up(); err != nil {
				return err
			}

			return printVersion(cmd, m)
		}),
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (one step by default, --all for every step)",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator, _ []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if all {
				if err := m.Down(); err != nil {
					return err
				}
			} else if err := m.Steps(-steps); err != nil {
				return err
			}

			return printVersion(cmd, m)
		}),
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	down.Flags().Bool("all", false, "roll back every migration")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator, _ []string) error {
			return printVersion(cmd, m)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: withMigrator(func(cmd *cobra.Command, m *migrations.Migrator, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid version %q", args[0])
			}
			if err := m.Force(version); err != nil {
				return err
			}

			return printVersion(cmd, m)
		}),
	})

	return cmd
}

func withMigrator(run func(cmd *cobra.Command, m *migrations.Migrator, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		m, err := migrations.NewMigrator(cfg.Postgres.URL())
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, m.Close())
		}()

		return run(cmd, m, args)
	}
}

func printVersion(cmd *cobra.Command, m *migrations.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	cmd.Printf("schema version %d (dirty=%t)\n", version, dirty)

	return nil
}
