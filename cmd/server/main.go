package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fleet-allocation-service/internal/adapters/fleetregistry"
	"fleet-allocation-service/internal/adapters/repositories"
	"fleet-allocation-service/internal/api"
	"fleet-allocation-service/internal/config"
	"fleet-allocation-service/internal/platform/db"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
	"fleet-allocation-service/internal/services"
)

// main is the application composition root.
// It wires the configured catalog adapter behind the port and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := obs.InitTracing(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Env)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			zap.L().Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	repo, closeRepo, err := openCatalogRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	router := api.NewRouter(api.RouterConfig{
		Repo: repo,
		Solver: services.Solver{
			MaxNodes:          cfg.SolverMaxNodes,
			Workers:           cfg.SolverWorkers,
			ParallelThreshold: cfg.SolverParallelThreshold,
		},
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("catalog_source", cfg.CatalogSource),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openCatalogRepository builds the adapter named by CATALOG_SOURCE. The returned
// close func releases its connections.
func openCatalogRepository(ctx context.Context, cfg config.Config) (ports.CatalogRepository, func(), error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLCatalogRepository(conn), func() { _ = conn.Close() }, nil

	case config.SourceRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open catalog: parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open catalog: ping redis: %w", err)
		}
		return repositories.NewRedisCatalogRepository(client, cfg.RedisCatalogKey), func() { _ = client.Close() }, nil

	case config.SourceRegistry:
		client, err := fleetregistry.NewClient(cfg.RegistryURL, cfg.RegistryAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil

	default:
		return repositories.NewFileCatalogRepository(cfg.CatalogPath), func() {}, nil
	}
}
