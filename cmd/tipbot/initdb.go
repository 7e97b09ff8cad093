package main

import (
	"fmt"

	"tipbot/config"
	pgStorage "tipbot/internal/adapter/storage/postgres"
	"tipbot/pkg/logger"

	"github.com/spf13/cobra"
)

func newInitDBCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

			ctx := cmd.Context()
			pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			return pgStorage.Migrate(ctx, pool, log)
		},
	}
}
