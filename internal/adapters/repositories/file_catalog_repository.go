package repositories

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"fleet-allocation-service/internal/domain"
)

type catalogFile struct {
	VehicleTypes []vehicleTypeRecord `yaml:"vehicle_types"`
}

type vehicleTypeRecord struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Capacity int    `yaml:"capacity" json:"capacity"`
	MaxCount int    `yaml:"max_count" json:"max_count"`
}

func (r vehicleTypeRecord) toDomain() domain.VehicleType {
	return domain.VehicleType{
		ID:       strings.TrimSpace(r.ID),
		Name:     strings.TrimSpace(r.Name),
		Capacity: r.Capacity,
		MaxCount: r.MaxCount,
	}
}

func recordFromDomain(vt domain.VehicleType) vehicleTypeRecord {
	return vehicleTypeRecord{ID: vt.ID, Name: vt.Name, Capacity: vt.Capacity, MaxCount: vt.MaxCount}
}

// Catalog read from a YAML file with a top-level vehicle_types list.
// The file is re-read on every call so edits apply without a restart.
type FileCatalogRepository struct {
	Path string
}

func NewFileCatalogRepository(path string) *FileCatalogRepository {
	return &FileCatalogRepository{Path: path}
}

func (f *FileCatalogRepository) ListVehicleTypes(_ context.Context) ([]domain.VehicleType, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: read %q: %w", f.Path, err)
	}

	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("list vehicle types: parse %q: %w", f.Path, err)
	}

	types := make([]domain.VehicleType, 0, len(doc.VehicleTypes))
	for _, r := range doc.VehicleTypes {
		types = append(types, r.toDomain())
	}
	return types, nil
}

// SaveVehicleTypes rewrites the file atomically via a temp file and rename.
func (f *FileCatalogRepository) SaveVehicleTypes(_ context.Context, types []domain.VehicleType) error {
	doc := catalogFile{VehicleTypes: make([]vehicleTypeRecord, 0, len(types))}
	for _, vt := range types {
		doc.VehicleTypes = append(doc.VehicleTypes, recordFromDomain(vt))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("save vehicle types: encode yaml: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save vehicle types: write %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("save vehicle types: rename %q: %w", tmp, err)
	}
	return nil
}
