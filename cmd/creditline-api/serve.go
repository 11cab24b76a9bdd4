package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/credexa/creditline-api/internal/api"
	"github.com/credexa/creditline-api/internal/audit"
	"github.com/credexa/creditline-api/internal/config"
	"github.com/credexa/creditline-api/internal/creditline"
	"github.com/credexa/creditline-api/internal/logging"
	"github.com/credexa/creditline-api/internal/metrics"
	"github.com/credexa/creditline-api/internal/ratelimit"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Env != ratelimit.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	profile := ratelimit.ResolveProfile(cfg.Env)
	logger.Info("rate limit profile resolved",
		zap.String("env", cfg.Env),
		zap.String("profile", profile.Name),
		zap.Int("rules", len(profile.Rules)))

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Profile: profile,
		Metrics: metrics.NewCollector(),
		Repo:    creditline.NewRepository(),
		Audit:   audit.NewTrail(logger),
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildStore creates the counter store the config asks for and returns it
// with the teardown that releases its resources (the memory store's
// janitor, or the Redis connection pool).
func buildStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ratelimit.CounterStore, func(), error) {
	if !cfg.Redis.Enabled {
		store := ratelimit.NewMemoryStore()
		logger.Info("using in-memory counter store")
		return store, store.Close, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}

	store := ratelimit.NewRedisStore(client)
	logger.Info("using redis counter store", zap.String("addr", cfg.Redis.Addr))
	return store, func() { _ = store.Close() }, nil
}
