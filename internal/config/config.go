package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
	SourceRegistry = "registry"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	CatalogSource   string `mapstructure:"CATALOG_SOURCE"`
	CatalogPath     string `mapstructure:"CATALOG_PATH"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	RedisURL        string `mapstructure:"REDIS_URL"`
	RedisCatalogKey string `mapstructure:"REDIS_CATALOG_KEY"`
	RegistryURL     string `mapstructure:"REGISTRY_URL"`
	RegistryAPIKey  string `mapstructure:"REGISTRY_API_KEY"`

	SolverMaxNodes          int64  `mapstructure:"SOLVER_MAX_NODES"`
	SolverWorkers           int    `mapstructure:"SOLVER_WORKERS"`
	SolverParallelThreshold uint64 `mapstructure:"SOLVER_PARALLEL_THRESHOLD"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `mapstructure:"OTEL_SERVICE_NAME"`

	SeedPath   string `mapstructure:"SEED_PATH"`
	SeedTarget string `mapstructure:"SEED_TARGET"`
}

var defaults = map[string]any{
	"PORT":                        "8080",
	"ENV":                         "development",
	"LOG_LEVEL":                   "info",
	"CATALOG_SOURCE":              SourceFile,
	"CATALOG_PATH":                "data/catalog.yaml",
	"DATABASE_URL":                "",
	"REDIS_URL":                   "",
	"REDIS_CATALOG_KEY":           "fleet:catalog",
	"REGISTRY_URL":                "",
	"REGISTRY_API_KEY":            "",
	"SOLVER_MAX_NODES":            int64(50_000_000),
	"SOLVER_WORKERS":              4,
	"SOLVER_PARALLEL_THRESHOLD":   uint64(1_000_000),
	"RATE_LIMIT_RPS":              20.0,
	"RATE_LIMIT_BURST":            40,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_SERVICE_NAME":           "fleet-allocation-service",
	"SEED_PATH":                   "data/seeds/vehicle_types.json",
	"SEED_TARGET":                 SourcePostgres,
}

// Load reads .env when present, then the process environment. Environment wins.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))
	cfg.SeedTarget = strings.ToLower(strings.TrimSpace(cfg.SeedTarget))

	return cfg, nil
}

// Validate checks the settings the configured catalog source depends on.
func (c Config) Validate() error {
	var errs []error

	switch c.CatalogSource {
	case SourceFile:
		if strings.TrimSpace(c.CatalogPath) == "" {
			errs = append(errs, errors.New("CATALOG_PATH is required for CATALOG_SOURCE=file"))
		}
	case SourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for CATALOG_SOURCE=postgres"))
		}
	case SourceRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			errs = append(errs, errors.New("REDIS_URL is required for CATALOG_SOURCE=redis"))
		}
	case SourceRegistry:
		if strings.TrimSpace(c.RegistryURL) == "" {
			errs = append(errs, errors.New("REGISTRY_URL is required for CATALOG_SOURCE=registry"))
		}
	default:
		errs = append(errs, fmt.Errorf("CATALOG_SOURCE %q is not one of file, postgres, redis, registry", c.CatalogSource))
	}

	if c.SolverMaxNodes < 0 {
		errs = append(errs, fmt.Errorf("SOLVER_MAX_NODES must not be negative (got %d)", c.SolverMaxNodes))
	}
	if c.SolverWorkers < 1 {
		errs = append(errs, fmt.Errorf("SOLVER_WORKERS must be at least 1 (got %d)", c.SolverWorkers))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive (got %g, %d)", c.RateLimitRPS, c.RateLimitBurst))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
