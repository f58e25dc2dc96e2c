package domain

import (
	"fmt"
	"math"
)

// Catalog is the fixed, ordered list of vehicle types for one allocation.
// Order defines both the search order and the positional encoding of an Assignment.
// A Catalog is never mutated after construction.
type Catalog struct {
	types []VehicleType
}

// NewCatalog copies types and rejects entries that break VehicleType invariants.
// An empty catalog is valid: every positive passenger count is then infeasible.
func NewCatalog(types []VehicleType) (*Catalog, error) {
	for i, t := range types {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("new catalog: entry %d: %w", i, err)
		}
	}

	owned := make([]VehicleType, len(types))
	copy(owned, types)

	return &Catalog{types: owned}, nil
}

func (c *Catalog) Len() int { return len(c.types) }

func (c *Catalog) At(i int) VehicleType { return c.types[i] }

// Types returns a copy of the catalog entries in order.
func (c *Catalog) Types() []VehicleType {
	out := make([]VehicleType, len(c.types))
	copy(out, c.types)
	return out
}

// MaxSeats is the seat total with every type used at its maximum count.
func (c *Catalog) MaxSeats() (int, error) {
	total := 0
	for _, t := range c.types {
		seats, ok := MulSeats(t.Capacity, t.MaxCount)
		if !ok {
			return 0, fmt.Errorf("catalog max seats: type %q: %w", t.ID, ErrArithmeticOverflow)
		}
		total, ok = AddSeats(total, seats)
		if !ok {
			return 0, fmt.Errorf("catalog max seats: type %q: %w", t.ID, ErrArithmeticOverflow)
		}
	}

	return total, nil
}

// SearchSpace is the number of leaves in the exhaustive search, Π(MaxCount+1).
// Saturates at math.MaxUint64.
func (c *Catalog) SearchSpace() uint64 {
	var space uint64 = 1
	for _, t := range c.types {
		branches := uint64(t.MaxCount) + 1
		if space > math.MaxUint64/branches {
			return math.MaxUint64
		}
		space *= branches
	}

	return space
}

// AddSeats returns a+b and false if the sum overflows int.
// Both operands are expected to be non-negative.
func AddSeats(a, b int) (int, bool) {
	if a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// MulSeats returns capacity*count and false if the product overflows int.
// Both operands are expected to be non-negative.
func MulSeats(capacity, count int) (int, bool) {
	if capacity == 0 || count == 0 {
		return 0, true
	}
	if capacity > math.MaxInt/count {
		return 0, false
	}
	return capacity * count, true
}
