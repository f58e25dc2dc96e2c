package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceFile, cfg.CatalogSource)
	assert.Equal(t, "fleet:catalog", cfg.RedisCatalogKey)
	assert.Equal(t, int64(50_000_000), cfg.SolverMaxNodes)
	assert.Equal(t, 4, cfg.SolverWorkers)
	assert.Equal(t, uint64(1_000_000), cfg.SolverParallelThreshold)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.NoError(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CATALOG_SOURCE", " Redis ")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SOLVER_WORKERS", "8")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SourceRedis, cfg.CatalogSource)
	assert.Equal(t, 8, cfg.SolverWorkers)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := Config{
		CatalogSource:  SourceFile,
		CatalogPath:    "data/catalog.yaml",
		SolverWorkers:  1,
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown source", func(c *Config) { c.CatalogSource = "ftp" }, "CATALOG_SOURCE"},
		{"postgres without url", func(c *Config) { c.CatalogSource = SourcePostgres }, "DATABASE_URL"},
		{"registry without url", func(c *Config) { c.CatalogSource = SourceRegistry }, "REGISTRY_URL"},
		{"no workers", func(c *Config) { c.SolverWorkers = 0 }, "SOLVER_WORKERS"},
		{"negative budget", func(c *Config) { c.SolverMaxNodes = -1 }, "SOLVER_MAX_NODES"},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	assert.NoError(t, base.Validate())
}

func TestGet(t *testing.T) {
	t.Setenv("FLEET_TEST_KEY", "")
	assert.Equal(t, "fallback", Get("FLEET_TEST_KEY", "fallback"))

	t.Setenv("FLEET_TEST_KEY", " value ")
	assert.Equal(t, "value", Get("FLEET_TEST_KEY", "fallback"))
}
