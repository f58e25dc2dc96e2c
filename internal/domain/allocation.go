package domain

// Assignment holds one vehicle count per catalog entry, in catalog order.
type Assignment []int

// Vehicles is the total number of vehicles used.
func (a Assignment) Vehicles() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// Represents the chosen fleet for one passenger count.
// It is the best feasible candidate found by the solver and is returned by value;
// Assignment is owned by the caller and never shared with solver state.
type Allocation struct {
	PassengerCount int
	SeatsUsed      int
	Leftover       int
	VehiclesUsed   int
	Assignment     Assignment
}

// One row of an allocation paired with its vehicle type.
type AllocationLine struct {
	VehicleType VehicleType
	Count       int
	Seats       int
}

// Lines pairs each assignment count with its catalog entry and the seats it provides.
// The catalog must be the one the allocation was computed against.
func (a Allocation) Lines(c *Catalog) []AllocationLine {
	lines := make([]AllocationLine, 0, len(a.Assignment))
	for i, n := range a.Assignment {
		t := c.At(i)
		lines = append(lines, AllocationLine{
			VehicleType: t,
			Count:       n,
			Seats:       n * t.Capacity,
		})
	}
	return lines
}
