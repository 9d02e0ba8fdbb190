package main

import (
	"bookmarks/config"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configName string

// NewRootCmd creates the root command for the bookmarks CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bookmarks",
		Short:        "Bookmarks API server",
		Long:         `Bookmarks serves account signup/signin, profile and bookmark endpoints backed by PostgreSQL.`,
		SilenceUsage:  true,
	}

	// Global flag for the config file name, looked up as <name>.yaml
	cmd.PersistentFlags().StringVar(&configName, "config", "config", "config file name without the .yaml extension")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}

func loadConfig() (*config.Config, error) {
	return config.Load(configName)
}
