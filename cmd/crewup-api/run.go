package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apiserver "github.com/crewup/crewup-api/internal/api_server"
	"github.com/crewup/crewup-api/internal/config"
	"github.com/crewup/crewup-api/internal/events"
	"github.com/crewup/crewup-api/internal/media"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/internal/sweeper"
	"github.com/crewup/crewup-api/pkg/log"
	"github.com/crewup/crewup-api/pkg/metrics"
	"github.com/crewup/crewup-api/pkg/migrations"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the marketplace api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logLvl, err := zap.ParseAtomicLevel(cfg.Service.LogLevel)
		if err != nil {
			logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}

		logger := log.InitLog(logLvl)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if cfg.Service.MigrationFolder != "" {
			if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
				zap.S().Fatalw("running db migrations", "error", err)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		producer := newEventProducer(cfg)
		defer func() { _ = producer.Close() }()

		jobService := service.NewJobService(s, producer)
		applicationService := service.NewApplicationService(s, producer)
		profileService := service.NewProfileService(s, newMediaUploader(cfg))

		prometheus.MustRegister(metrics.NewMarketplaceStatsCollector(s))

		sweepInterval, err := time.ParseDuration(cfg.Service.SweepInterval)
		if err != nil {
			zap.S().Warnw("invalid sweep interval, using 1m", "value", cfg.Service.SweepInterval)
			sweepInterval = time.Minute
		}
		go sweeper.New(jobService, sweepInterval).Run(ctx)

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, listener, jobService, applicationService, profileService)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("running api server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newEventProducer(cfg *config.Config) *events.EventProducer {
	if cfg.Service.Redis.Address == "" {
		zap.S().Info("no redis address configured, events are written to stdout")
		return events.NewEventProducer(&events.StdoutWriter{})
	}

	writer, err := events.NewRedisWriter(cfg.Service.Redis.Address, cfg.Service.Redis.Password, cfg.Service.Redis.DB)
	if err != nil {
		zap.S().Fatalw("connecting to redis", "error", err)
	}
	return events.NewEventProducer(writer)
}

func newMediaUploader(cfg *config.Config) service.MediaUploader {
	if cfg.Service.S3.Endpoint == "" {
		return nil
	}

	uploader, err := media.NewMinioUploader(
		media.WithEndpoint(cfg.Service.S3.Endpoint),
		media.WithBucket(cfg.Service.S3.Bucket),
		media.WithAccessKey(cfg.Service.S3.AccessKey),
		media.WithSecretKey(cfg.Service.S3.SecretKey),
		media.WithSSL(cfg.Service.S3.UseSSL),
	)
	if err != nil {
		zap.S().Fatalw("creating media uploader", "error", err)
	}
	return uploader
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
