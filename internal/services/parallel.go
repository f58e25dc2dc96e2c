package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fleet-allocation-service/internal/domain"
)

// Partitions are one goroutine each; wider outermost ranges fall back to Solve.
const maxPartitions = 4096

type partitionResult struct {
	best  domain.Allocation
	found bool
	stats SolveStats
}

// SolveParallel splits the search on the count of the first catalog entry: partition c
// explores every assignment whose first count is c. Each worker owns its search state;
// the node budget is shared. Partials are folded in ascending c with better, which
// reproduces the sequential traversal order, so the result equals Solve's.
func (s Solver) SolveParallel(
	ctx context.Context,
	passengerCount int,
	catalog *domain.Catalog,
	workers int,
) (domain.Allocation, SolveStats, error) {
	if workers <= 1 || catalog == nil || catalog.Len() == 0 || catalog.At(0).MaxCount >= maxPartitions {
		return s.Solve(ctx, passengerCount, catalog)
	}

	root, err := s.prepare(ctx, passengerCount, catalog)
	if err != nil {
		return domain.Allocation{}, SolveStats{}, err
	}
	// The root node is charged here, as the sequential search would charge it.
	if !root.budget.spend() {
		return domain.Allocation{}, SolveStats{}, fmt.Errorf(
			"solve parallel: visited 1 nodes (max %d): %w",
			root.budget.max, domain.ErrSearchBudgetExceeded,
		)
	}

	first := catalog.At(0)
	results := make([]partitionResult, first.MaxCount+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for c := 0; c <= first.MaxCount; c++ {
		g.Go(func() error {
			sr := newSearch(gctx, passengerCount, catalog, root.budget)
			sr.counts[0] = c
			if err := sr.visit(1, c*first.Capacity, c); err != nil {
				return fmt.Errorf("partition %s=%d: %w", first.ID, c, err)
			}
			results[c] = partitionResult{best: sr.best, found: sr.found, stats: sr.stats}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Allocation{}, SolveStats{}, fmt.Errorf("solve parallel: %w", err)
	}

	stats := SolveStats{NodesVisited: 1, Workers: workers}
	var best *domain.Allocation
	for i := range results {
		r := &results[i]
		stats.NodesVisited += r.stats.NodesVisited
		stats.LeavesEvaluated += r.stats.LeavesEvaluated
		if r.found && better(r.best, best) {
			best = &r.best
		}
	}

	if best == nil {
		return domain.Allocation{}, stats, fmt.Errorf(
			"solve parallel: passenger_count=%d: %w",
			passengerCount, domain.ErrInfeasible,
		)
	}

	return *best, stats, nil
}
