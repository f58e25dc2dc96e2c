package ports

import (
	"context"

	"fleet-allocation-service/internal/domain"
)

// Port: a boundary for reading the vehicle catalog from a data source.
type CatalogRepository interface {
	// Return every vehicle type in catalog order. Order is significant: it is the
	// search order and the positional encoding of assignments.
	ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error)
}

// Port: a boundary for replacing the stored catalog.
type CatalogWriter interface {
	SaveVehicleTypes(ctx context.Context, types []domain.VehicleType) error
}
