package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/qualinet/review-planner/internal/api_server"
	"github.com/qualinet/review-planner/internal/config"
	"github.com/qualinet/review-planner/internal/notifications"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the review api",
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

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Named("run").Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Named("run").Fatalf("initializing data store: %v", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		writer, err := newNotificationWriter(cfg)
		if err != nil {
			zap.S().Named("run").Fatalf("initializing notification writer: %v", err)
		}

		dispatcherOpts := []notifications.DispatcherOptions{}
		if cfg.Service.Kafka.Topic != "" {
			dispatcherOpts = append(dispatcherOpts, notifications.WithOutputTopic(cfg.Service.Kafka.Topic))
		}
		dispatcher := notifications.NewDispatcher(writer, dispatcherOpts...)
		defer func() { _ = dispatcher.Close() }()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Named("run").Fatalf("creating listener: %s", err)
			}

			server := apiserver.New(cfg, s, listener, dispatcher)
			if err := server.Run(ctx); err != nil {
				zap.S().Named("run").Fatalf("Error running server: %s", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Named("run").Fatalf("creating listener: %s", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, s)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Named("run").Fatalf("Error running metrics server: %s", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newNotificationWriter(cfg *config.Config) (notifications.Writer, error) {
	if len(cfg.Service.Kafka.Brokers) == 0 {
		return &notifications.StdoutWriter{}, nil
	}
	return notifications.NewKafkaWriter(cfg.Service.Kafka.Brokers, cfg.Service.Kafka.SaramaConfig)
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
