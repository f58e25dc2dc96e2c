package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fleet-allocation-service/internal/adapters/repositories"
	"fleet-allocation-service/internal/config"
	"fleet-allocation-service/internal/platform/db"
	"fleet-allocation-service/internal/platform/obs"
)

// dbtool initializes the catalog store named by SEED_TARGET and loads SEED_PATH into it.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	seedPath := config.Get("SEED_PATH", cfg.SeedPath)
	if err := seed(context.Background(), cfg, seedPath); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seeding complete", zap.String("target", cfg.SeedTarget), zap.String("seed_path", seedPath))
}

func seed(ctx context.Context, cfg config.Config, seedPath string) error {
	switch cfg.SeedTarget {
	case config.SourcePostgres:
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for SEED_TARGET=postgres")
		}
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		zap.L().Info("initializing database schema")
		if err := repositories.InitSchema(ctx, conn); err != nil {
			return err
		}
		return repositories.SeedFromJSON(ctx, repositories.NewSQLCatalogRepository(conn), seedPath)

	case config.SourceRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		defer client.Close()
		return repositories.SeedFromJSON(ctx, repositories.NewRedisCatalogRepository(client, cfg.RedisCatalogKey), seedPath)

	case config.SourceFile:
		return repositories.SeedFromJSON(ctx, repositories.NewFileCatalogRepository(cfg.CatalogPath), seedPath)

	default:
		return fmt.Errorf("SEED_TARGET %q is not one of postgres, redis, file", cfg.SeedTarget)
	}
}
