package domain

import "fmt"

// A kind of vehicle the fleet can dispatch.
// ID and Name are carried through for display only and play no part in allocation.
type VehicleType struct {
	ID       string
	Name     string
	Capacity int
	MaxCount int
}

// Validate checks the per-type invariants: Capacity > 0 and MaxCount >= 0.
func (v VehicleType) Validate() error {
	if v.Capacity <= 0 {
		return fmt.Errorf("vehicle type %q: capacity must be positive (capacity=%d): %w", v.ID, v.Capacity, ErrInvalidCatalog)
	}
	if v.MaxCount < 0 {
		return fmt.Errorf("vehicle type %q: max count must not be negative (max_count=%d): %w", v.ID, v.MaxCount, ErrInvalidCatalog)
	}

	return nil
}
