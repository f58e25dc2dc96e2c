package repositories

import (
	"context"
	"slices"
	"sync"

	"fleet-allocation-service/internal/domain"
)

// In-memory catalog store, safe for concurrent use.
type MemoryCatalogRepository struct {
	mu    sync.RWMutex
	types []domain.VehicleType
}

func NewMemoryCatalogRepository(types []domain.VehicleType) *MemoryCatalogRepository {
	return &MemoryCatalogRepository{types: slices.Clone(types)}
}

func (m *MemoryCatalogRepository) ListVehicleTypes(_ context.Context) ([]domain.VehicleType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.types), nil
}

func (m *MemoryCatalogRepository) SaveVehicleTypes(_ context.Context, types []domain.VehicleType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = slices.Clone(types)
	return nil
}
