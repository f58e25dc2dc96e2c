package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fleet-allocation-service/internal/domain"
)

// ErrCatalogNotFound is returned when the configured key holds no catalog.
var ErrCatalogNotFound = domain.ErrCatalogNotFound

// Catalog stored as a JSON array under a single Redis key.
type RedisCatalogRepository struct {
	client *redis.Client
	key    string
}

func NewRedisCatalogRepository(client *redis.Client, key string) *RedisCatalogRepository {
	return &RedisCatalogRepository{client: client, key: key}
}

func (r *RedisCatalogRepository) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("list vehicle types: key %q: %w", r.key, ErrCatalogNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: get %q: %w", r.key, err)
	}

	var records []vehicleTypeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("list vehicle types: decode %q: %w", r.key, err)
	}

	types := make([]domain.VehicleType, 0, len(records))
	for _, rec := range records {
		types = append(types, rec.toDomain())
	}
	return types, nil
}

func (r *RedisCatalogRepository) SaveVehicleTypes(ctx context.Context, types []domain.VehicleType) error {
	records := make([]vehicleTypeRecord, 0, len(types))
	for _, vt := range types {
		records = append(records, recordFromDomain(vt))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("save vehicle types: encode: %w", err)
	}

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save vehicle types: set %q: %w", r.key, err)
	}
	return nil
}
