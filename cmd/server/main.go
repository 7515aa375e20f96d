package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/notifeed/notification-service/internal/api"
	"github.com/notifeed/notification-service/internal/core/ports"
	"github.com/notifeed/notification-service/internal/core/service"
	"github.com/notifeed/notification-service/internal/infrastructure/config"
	"github.com/notifeed/notification-service/internal/infrastructure/crypto"
	"github.com/notifeed/notification-service/internal/infrastructure/db"
	"github.com/notifeed/notification-service/internal/infrastructure/db/redis"
	"github.com/notifeed/notification-service/internal/infrastructure/http/handlers"
	"github.com/notifeed/notification-service/internal/infrastructure/queue"
	"github.com/notifeed/notification-service/internal/infrastructure/telemetry"
	"github.com/notifeed/notification-service/internal/infrastructure/token"
	"github.com/notifeed/notification-service/internal/pkg/metrics"
	"github.com/notifeed/notification-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Notification Service API
// @version 1.0
// @description User accounts with OAuth2 password-flow tokens and a per-user notification feed.
// @BasePath /
// @securityDefinitions.oauth2.password OAuth2Password
// @tokenUrl /api/auth/login
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet; fall back to defaults to report.
		l := logger.Init(logger.Options{Service: "notification-service"})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: cfg.Telemetry.ServiceName,
	})
	ctx = log.WithContext(ctx)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetry setup")
	}

	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open store")
	}
	log.Info().Str("driver", store.Driver).Msg("store ready")

	var (
		rdb          *goredis.Client
		refreshStore ports.RefreshStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("connect redis")
		}
		if cfg.Auth.RefreshRotation {
			refreshStore = redis.NewRefreshStore(rdb)
		}
	}

	poolCtx, stopPool := context.WithCancel(context.Background())
	pool := queue.NewPool(cfg.Auth.HashWorkers, metrics.HashQueueDepth, log)
	pool.Start(poolCtx)

	codec, err := token.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.Algorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec")
	}
	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost, pool)

	authService := service.NewAuthService(store.Users, hasher, codec, service.AuthOptions{
		AccessTTL:    cfg.Auth.AccessTTL(),
		RefreshTTL:   cfg.Auth.RefreshTTL(),
		RefreshStore: refreshStore,
	}, log)
	notificationService := service.NewNotificationService(store.Notifications, log)

	readiness := map[string]handlers.Pinger{"store": store}
	if rdb != nil {
		readiness["redis"] = redis.Pinger{Client: rdb}
	}

	e := api.NewRouter(api.Deps{
		AuthService:         authService,
		NotificationService: notificationService,
		Readiness:           readiness,
		Logger:              log,
		Registerer:          prometheus.DefaultRegisterer,
		Gatherer:            prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Int("hash_workers", pool.Size()).
			Bool("refresh_rotation", refreshStore != nil).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopPool()
	pool.Wait()

	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("close store")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("flush traces")
	}

	log.Info().Msg("server stopped")
}
