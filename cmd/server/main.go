package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/eon-group/expiring-link-service/config"
	appmodel "github.com/eon-group/expiring-link-service/internal/app/model"
	appserver "github.com/eon-group/expiring-link-service/internal/app/server"
	appservice "github.com/eon-group/expiring-link-service/internal/app/service"
	appstore "github.com/eon-group/expiring-link-service/internal/app/store"
	"github.com/eon-group/expiring-link-service/internal/infra/logger"
	infraNATS "github.com/eon-group/expiring-link-service/internal/infra/nats"
	infraPostgres "github.com/eon-group/expiring-link-service/internal/infra/postgres"
	infraPrometheus "github.com/eon-group/expiring-link-service/internal/infra/prometheus"
	infraRedis "github.com/eon-group/expiring-link-service/internal/infra/redis"
)

func main() {
	ctx := context.Background()

	isDev := os.Getenv("APP_ENV") != "production"
	log := logger.MustInit(logger.Config{
		Development: isDev,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	log.Info("Configuration loaded successfully",
		zap.String("store_backend", cfg.Store.Backend),
		zap.Int("server_port", cfg.Server.Port),
		zap.Bool("api_key_set", cfg.Server.APIKey != ""),
		zap.String("nats_host", cfg.NATS.Host),
	)

	var linkStore appstore.LinkStore
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		// gorm handles the schema; day-to-day queries go through pgx.
		gormDB, err := infraPostgres.NewGorm(cfg.Postgres)
		if err != nil {
			log.Fatal("Failed to open GORM connection", zap.Error(err))
		}
		if err := infraPostgres.AutoMigrate(ctx, gormDB, &appmodel.Link{}); err != nil {
			log.Fatal("Failed to run database migrations", zap.Error(err))
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}

		pool, err := infraPostgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			log.Fatal("Failed to connect to Postgres", zap.Error(err))
		}
		defer pool.Close()
		log.Info("Connected to Postgres successfully")

		linkStore = appstore.NewPostgresStore(pool)
	default:
		redisClient, err := infraRedis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		log.Info("Connected to Redis successfully")

		linkStore = appstore.NewRedisStore(redisClient)
	}

	var events *appservice.EventPublisher
	if cfg.NATS.Host != "" {
		natsConn, js, err := infraNATS.Connect(cfg.NATS)
		if err != nil {
			log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsConn.Drain()

		events, err = appservice.NewEventPublisher(js)
		if err != nil {
			log.Fatal("Failed to set up link event stream", zap.Error(err))
		}
		log.Info("Connected to NATS successfully")
	} else {
		log.Info("NATS not configured, lifecycle events disabled")
	}

	if !isDev {
		promServer := infraPrometheus.NewServer(cfg.Prometheus)
		go func() {
			log.Info("Starting Prometheus metrics server",
				zap.String("addr", promServer.Addr))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	} else {
		log.Info("Skipping Prometheus metrics server in development mode")
	}

	links := appservice.NewLinkService(linkStore, events, log)

	srv := appserver.New(appserver.Dependencies{
		Logger: log,
		Links:  links,
		APIKey: cfg.Server.APIKey,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting HTTP server", zap.String("addr", addr))
	if err := srv.Listen(addr); err != nil {
		log.Fatal("Fiber server exited", zap.Error(err))
	}
}
