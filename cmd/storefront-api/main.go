// @title        Tábua Storefront API
// @version      1.0
// @description  Registration, login, token verification, contact form and product listing for the Tábua storefront.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/api"
	"github.com/tabaum/storefront/internal/api/handler"
	"github.com/tabaum/storefront/internal/api/metrics"
	"github.com/tabaum/storefront/internal/core/service"
	"github.com/tabaum/storefront/internal/infrastructure/config"
	"github.com/tabaum/storefront/internal/infrastructure/db/mongo"
	"github.com/tabaum/storefront/internal/infrastructure/db/postgres"
	"github.com/tabaum/storefront/internal/infrastructure/db/redis"
	"github.com/tabaum/storefront/internal/infrastructure/queue"
	"github.com/tabaum/storefront/pkg/logger"
)

const (
	devJWTSecret    = "tabaum-dev-secret"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront-api",
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{
		URL:      cfg.Redis.URL,
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	trustedProxies, err := cfg.TrustedProxyRanges()
	if err != nil {
		return err
	}

	userRepo := mongo.NewUserRepository(mongoDB)
	contactRepo := mongo.NewContactRepository(mongoDB)
	if err := mongo.EnsureIndexes(ctx, userRepo, contactRepo); err != nil {
		return err
	}

	auditSvc := service.NewAuditService(mongo.NewAuthEventRepository(mongoDB), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditSvc, log)
	dispatcher.OnDrop(metrics.AuditEventsDroppedTotal.Inc)
	dispatcher.Start(ctx)

	authSvc := service.NewAuthService(userRepo, dispatcher, cfg.JWTSecret, cfg.TokenTTL, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authSvc,
		TokenVerifier:  authSvc,
		ContactService: service.NewContactService(contactRepo, log),
		ProductService: service.NewProductService(postgres.NewProductRepository(pool), log),
		AuthLimiter:    redis.NewRateLimiter(rdb, "auth", cfg.RateLimit.Max, cfg.RateLimit.Window),
		Readiness: map[string]handler.Pinger{
			"mongodb":  mongo.Pinger(mongoClient),
			"redis":    redis.Pinger(rdb),
			"postgres": pool.Ping,
		},
		AllowedOrigins: cfg.AllowedOrigins(),
		TrustedProxies: trustedProxies,
		Log:            log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	return shutdown(e, log)
}

func shutdown(e interface{ Shutdown(context.Context) error }, log zerolog.Logger) error {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("storefront api stopped")
	return nil
}
