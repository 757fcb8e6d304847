package main

import (
	"github.com/gin-gonic/gin"
	"github.com/mikepea/linkshelf/pkg/linkshelf/config"
	"github.com/mikepea/linkshelf/pkg/linkshelf/database"
	"github.com/mikepea/linkshelf/pkg/linkshelf/logging"
	"github.com/mikepea/linkshelf/pkg/linkshelf/models"
	"github.com/mikepea/linkshelf/pkg/linkshelf/server"
	"github.com/mikepea/linkshelf/pkg/linkshelf/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
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

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		return err
	}
	log.Info("database migrations completed", zap.String("driver", cfg.DB.Driver))

	bookmarkStore, err := store.New(database.GetDB())
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	router := server.NewRouter(server.Deps{
		Store:    bookmarkStore,
		Logger:   log,
		BasePath: cfg.HTTP.BasePath,
		MaxLimit: cfg.ListMaxLimit,
	})

	log.Info("starting linkshelf server", zap.String("addr", cfg.HTTP.Addr), zap.String("base_path", cfg.HTTP.BasePath))
	return router.Run(cfg.HTTP.Addr)
}
