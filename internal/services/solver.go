package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"fleet-allocation-service/internal/domain"
)

// ctx is polled once per this many visited nodes.
const ctxCheckInterval = 4096

// SolveStats describes the work done by one search.
type SolveStats struct {
	NodesVisited    int64
	LeavesEvaluated int64
	Workers         int
}

// Solver finds the allocation that seats every passenger with the fewest leftover
// seats, then the fewest vehicles.
//
// The zero value runs an unbounded single-threaded search. MaxNodes caps the number of
// visited search nodes; Workers and ParallelThreshold control when Allocate switches to
// the partitioned search.
type Solver struct {
	MaxNodes          int64
	Workers           int
	ParallelThreshold uint64
}

// Solve runs the unbounded sequential search.
func Solve(passengerCount int, catalog *domain.Catalog) (domain.Allocation, error) {
	alloc, _, err := Solver{}.Solve(context.Background(), passengerCount, catalog)
	return alloc, err
}

// Allocate picks the sequential or the partitioned search based on the catalog's
// search space. Both return the identical allocation for identical input.
func (s Solver) Allocate(
	ctx context.Context,
	passengerCount int,
	catalog *domain.Catalog,
) (domain.Allocation, SolveStats, error) {
	if s.Workers > 1 && catalog != nil && catalog.SearchSpace() >= s.ParallelThreshold {
		return s.SolveParallel(ctx, passengerCount, catalog, s.Workers)
	}
	return s.Solve(ctx, passengerCount, catalog)
}

// Solve explores every per-type count in catalog order, depth first, lower counts first.
//
// Candidates are compared with better, so on exact ties the first one discovered in this
// traversal order is returned. Subtrees that cannot change the result are skipped:
// those that cannot reach the passenger count, and those whose prefix already seats
// everyone (the all-zero completion is their first leaf and dominates the rest).
func (s Solver) Solve(
	ctx context.Context,
	passengerCount int,
	catalog *domain.Catalog,
) (domain.Allocation, SolveStats, error) {
	sr, err := s.prepare(ctx, passengerCount, catalog)
	if err != nil {
		return domain.Allocation{}, SolveStats{}, err
	}
	sr.stats.Workers = 1

	if err := sr.visit(0, 0, 0); err != nil {
		return domain.Allocation{}, sr.stats, fmt.Errorf("solve: %w", err)
	}

	if !sr.found {
		return domain.Allocation{}, sr.stats, fmt.Errorf(
			"solve: passenger_count=%d: %w",
			passengerCount, domain.ErrInfeasible,
		)
	}

	return sr.best, sr.stats, nil
}

// prepare validates the input and builds the search state shared by both solve paths.
func (s Solver) prepare(ctx context.Context, passengerCount int, catalog *domain.Catalog) (*search, error) {
	if passengerCount <= 0 {
		return nil, fmt.Errorf("solve: passenger_count=%d: %w", passengerCount, domain.ErrInvalidInput)
	}
	if catalog == nil {
		return nil, fmt.Errorf("solve: catalog is nil: %w", domain.ErrInvalidCatalog)
	}

	maxSeats, err := catalog.MaxSeats()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if maxSeats < passengerCount {
		return nil, fmt.Errorf(
			"solve: passenger_count=%d exceeds max_seats=%d: %w",
			passengerCount, maxSeats, domain.ErrInfeasible,
		)
	}

	return newSearch(ctx, passengerCount, catalog, &nodeBudget{max: s.MaxNodes}), nil
}

type nodeBudget struct {
	max  int64
	used atomic.Int64
}

// spend charges one node and reports whether the budget still holds.
func (b *nodeBudget) spend() bool {
	if b.max <= 0 {
		return true
	}
	return b.used.Add(1) <= b.max
}

// spent is the number of nodes charged so far across every search sharing the budget.
func (b *nodeBudget) spent() int64 {
	return b.used.Load()
}

// search is the mutable state of one depth-first traversal. It is owned by a single
// goroutine; the partitioned solver gives each worker its own.
type search struct {
	ctx        context.Context
	passengers int
	types      []domain.VehicleType
	// suffixSeats[i] is the seat total of types i..n-1 at their maximum counts.
	suffixSeats []int
	// counts[i:] is all zeros whenever position i is entered.
	counts []int
	budget *nodeBudget

	best  domain.Allocation
	found bool
	stats SolveStats
}

// newSearch expects catalog.MaxSeats to have succeeded, which bounds every partial seat
// sum computed during the traversal, so the accumulation below cannot overflow.
func newSearch(ctx context.Context, passengers int, catalog *domain.Catalog, budget *nodeBudget) *search {
	types := catalog.Types()
	suffix := make([]int, len(types)+1)
	for i := len(types) - 1; i >= 0; i-- {
		suffix[i] = suffix[i+1] + types[i].Capacity*types[i].MaxCount
	}

	return &search{
		ctx:         ctx,
		passengers:  passengers,
		types:       types,
		suffixSeats: suffix,
		counts:      make([]int, len(types)),
		budget:      budget,
	}
}

func (s *search) visit(i, seats, vehicles int) error {
	s.stats.NodesVisited++
	if !s.budget.spend() {
		return fmt.Errorf("visited %d nodes (max %d): %w", s.budget.spent(), s.budget.max, domain.ErrSearchBudgetExceeded)
	}
	if s.stats.NodesVisited%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}

	if i == len(s.types) || seats >= s.passengers {
		s.leaf(seats, vehicles)
		return nil
	}

	if seats+s.suffixSeats[i] < s.passengers {
		return nil
	}

	t := s.types[i]
	for count := 0; count <= t.MaxCount; count++ {
		s.counts[i] = count
		if err := s.visit(i+1, seats+count*t.Capacity, vehicles+count); err != nil {
			s.counts[i] = 0
			return err
		}
	}
	s.counts[i] = 0

	return nil
}

// leaf evaluates the assignment held in counts, with every position not yet decided at zero.
func (s *search) leaf(seats, vehicles int) {
	s.stats.LeavesEvaluated++
	if seats < s.passengers {
		return
	}

	candidate := domain.Allocation{
		PassengerCount: s.passengers,
		SeatsUsed:      seats,
		Leftover:       seats - s.passengers,
		VehiclesUsed:   vehicles,
	}

	var incumbent *domain.Allocation
	if s.found {
		incumbent = &s.best
	}
	if !better(candidate, incumbent) {
		return
	}

	candidate.Assignment = append(domain.Assignment(nil), s.counts...)
	s.best = candidate
	s.found = true
}
