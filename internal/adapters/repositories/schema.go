package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/ports"
)

// Initialize the Postgres schema for the vehicle catalog.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVehicleTypesQuery := `
	CREATE TABLE IF NOT EXISTS vehicle_types (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		max_count INTEGER NOT NULL CHECK (max_count >= 0)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_vehicle_types_id
	ON vehicle_types(id);
	`

	statements := []string{
		createVehicleTypesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type VehicleTypeSeed struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	MaxCount int    `json:"max_count"`
}

// Read and validate a JSON seed file of vehicle types, keeping file order.
func LoadSeedFile(jsonPath string) ([]domain.VehicleType, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", jsonPath, err)
	}

	var data []VehicleTypeSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seed: parse json: %w", err)
	}

	types := make([]domain.VehicleType, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("load seed: item at index %d: id cannot be empty", i+1)
		}

		vt := domain.VehicleType{
			ID:       id,
			Name:     strings.TrimSpace(item.Name),
			Capacity: item.Capacity,
			MaxCount: item.MaxCount,
		}
		if err := vt.Validate(); err != nil {
			return nil, fmt.Errorf("load seed: item at index %d: %w", i+1, err)
		}
		types = append(types, vt)
	}

	return types, nil
}

// Replace the stored catalog with the contents of a JSON seed file.
func SeedFromJSON(ctx context.Context, w ports.CatalogWriter, jsonPath string) error {
	types, err := LoadSeedFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed vehicle types: %w", err)
	}

	if err := w.SaveVehicleTypes(ctx, types); err != nil {
		return fmt.Errorf("seed vehicle types: %w", err)
	}

	return nil
}
