package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-allocation-service/internal/domain"
)

var sampleTypes = []domain.VehicleType{
	{ID: "x", Name: "Type X", Capacity: 10, MaxCount: 3},
	{ID: "y", Name: "Type Y", Capacity: 15, MaxCount: 2},
}

func TestMemoryCatalogRepositoryCopies(t *testing.T) {
	ctx := context.Background()
	input := append([]domain.VehicleType(nil), sampleTypes...)
	repo := NewMemoryCatalogRepository(input)
	input[0].Capacity = 1

	got, err := repo.ListVehicleTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTypes, got)

	got[1].MaxCount = 0
	again, _ := repo.ListVehicleTypes(ctx)
	assert.Equal(t, 2, again[1].MaxCount)

	require.NoError(t, repo.SaveVehicleTypes(ctx, sampleTypes[:1]))
	again, _ = repo.ListVehicleTypes(ctx)
	assert.Len(t, again, 1)
}

func TestFileCatalogRepositoryReadsYAMLInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
vehicle_types:
  - id: y
    name: " Type Y "
    capacity: 15
    max_count: 2
  - id: x
    name: Type X
    capacity: 10
    max_count: 3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := NewFileCatalogRepository(path).ListVehicleTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "y", got[0].ID)
	assert.Equal(t, "Type Y", got[0].Name)
	assert.Equal(t, domain.VehicleType{ID: "x", Name: "Type X", Capacity: 10, MaxCount: 3}, got[1])
}

func TestFileCatalogRepositoryAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{"vehicle_types": [{"id": "bus", "name": "Bus", "capacity": 50, "max_count": 1}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := NewFileCatalogRepository(path).ListVehicleTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.VehicleType{{ID: "bus", Name: "Bus", Capacity: 50, MaxCount: 1}}, got)
}

func TestFileCatalogRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewFileCatalogRepository(filepath.Join(t.TempDir(), "catalog.yaml"))

	require.NoError(t, repo.SaveVehicleTypes(ctx, sampleTypes))
	got, err := repo.ListVehicleTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTypes, got)
}

func TestFileCatalogRepositoryErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileCatalogRepository(filepath.Join(dir, "missing.yaml")).ListVehicleTypes(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("vehicle_types: [oops"), 0o644))
	_, err = NewFileCatalogRepository(bad).ListVehicleTypes(context.Background())
	assert.Error(t, err)
}

func newRedisRepo(t *testing.T) (*RedisCatalogRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCatalogRepository(client, "fleet:catalog"), mr
}

func TestRedisCatalogRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mr := newRedisRepo(t)

	require.NoError(t, repo.SaveVehicleTypes(ctx, sampleTypes))
	assert.True(t, mr.Exists("fleet:catalog"))

	got, err := repo.ListVehicleTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTypes, got)
}

func TestRedisCatalogRepositoryMissingKey(t *testing.T) {
	repo, _ := newRedisRepo(t)

	_, err := repo.ListVehicleTypes(context.Background())
	assert.True(t, errors.Is(err, ErrCatalogNotFound), "err = %v", err)
}

func TestRedisCatalogRepositoryCorruptValue(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set("fleet:catalog", "not json"))

	_, err := repo.ListVehicleTypes(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrCatalogNotFound))
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vehicle_types.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSeedFromJSON(t *testing.T) {
	ctx := context.Background()
	path := writeSeed(t, `[
		{"id": "x", "name": "Type X", "capacity": 10, "max_count": 3},
		{"id": "y", "name": "Type Y", "capacity": 15, "max_count": 2}
	]`)

	repo := NewMemoryCatalogRepository(nil)
	require.NoError(t, SeedFromJSON(ctx, repo, path))

	got, _ := repo.ListVehicleTypes(ctx)
	assert.Equal(t, sampleTypes, got)
}

func TestLoadSeedFileRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"empty id":       `[{"id": " ", "capacity": 10, "max_count": 1}]`,
		"zero capacity":  `[{"id": "a", "capacity": 0, "max_count": 1}]`,
		"negative count": `[{"id": "a", "capacity": 4, "max_count": -2}]`,
		"not json":       `{`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSeedFile(writeSeed(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadSeedFile(writeSeed(t, `[{"id": "a", "capacity": 0, "max_count": 1}]`))
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}
