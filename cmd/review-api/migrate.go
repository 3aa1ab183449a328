package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qualinet/review-planner/internal/config"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/pkg/log"
	"github.com/qualinet/review-planner/pkg/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zap.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Named("migrate").Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Named("migrate").Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Named("migrate").Fatalf("running migrations: %v", err)
			}
		} else {
			if err := s.InitialMigration(); err != nil {
				zap.S().Named("migrate").Fatalf("running initial migration: %v", err)
			}
		}

		if err := s.Seed(context.Background()); err != nil {
			zap.S().Named("migrate").Fatalf("seeding the db: %v", err)
		}

		zap.S().Named("migrate").Info("Db migrated")
		return nil
	},
}
