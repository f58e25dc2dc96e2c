package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fleet-allocation-service/internal/domain"
)

// Postgres-backed implementation of the CatalogRepository and CatalogWriter ports.
type SQLCatalogRepository struct{ DB *sql.DB }

func NewSQLCatalogRepository(db *sql.DB) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db}
}

// Return all vehicle types ordered by their catalog position.
func (s *SQLCatalogRepository) ListVehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		capacity,
		max_count
	FROM vehicle_types
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: query vehicle_types table: %w", err)
	}
	defer rows.Close()

	types := make([]domain.VehicleType, 0, 16)
	for rows.Next() {
		var vt domain.VehicleType
		if err := rows.Scan(&vt.ID, &vt.Name, &vt.Capacity, &vt.MaxCount); err != nil {
			return nil, fmt.Errorf("list vehicle types: scan row: %w", err)
		}
		types = append(types, vt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicle types: row iteration: %w", err)
	}

	return types, nil
}

// Replace every stored vehicle type in one transaction. Slice order becomes position order.
func (s *SQLCatalogRepository) SaveVehicleTypes(ctx context.Context, types []domain.VehicleType) error {
	if s.DB == nil {
		return errors.New("sql catalog repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save vehicle types: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicle_types;`); err != nil {
		return fmt.Errorf("save vehicle types: clear table: %w", err)
	}

	query := `
	INSERT INTO vehicle_types (
		position,
		id,
		name,
		capacity,
		max_count
	)
	VALUES ($1, $2, $3, $4, $5);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("save vehicle types: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, vt := range types {
		if _, err := stmt.ExecContext(ctx, i, vt.ID, vt.Name, vt.Capacity, vt.MaxCount); err != nil {
			return fmt.Errorf("save vehicle types: insert id=%q: %w", vt.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save vehicle types: commit tx: %w", err)
	}

	return nil
}
