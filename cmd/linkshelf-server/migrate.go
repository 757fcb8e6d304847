package main

import (
	"github.com/mikepea/linkshelf/pkg/linkshelf/config"
	"github.com/mikepea/linkshelf/pkg/linkshelf/database"
	"github.com/mikepea/linkshelf/pkg/linkshelf/logging"
	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if err := database.Connect(cfg.DB.Driver, cfg.DB.DSN, log); err != nil {
				return err
			}
			if err := models.AutoMigrate(database.GetDB()); err != nil {
				return err
			}

			log.Info("migrations complete", zap.String("driver", cfg.DB.Driver))
			return nil
		},
	}
}
