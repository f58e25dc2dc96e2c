package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/metrics"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

type AllocateRequest struct {
	PassengerCount int
	// VehicleTypes overrides the stored catalog when non-empty.
	VehicleTypes []domain.VehicleType
}

type AllocateResult struct {
	Allocation domain.Allocation
	Catalog    *domain.Catalog
	Stats      SolveStats
}

// AllocateFleet loads the catalog (from the request or the repository), validates it and
// runs the solver. Domain outcomes such as domain.ErrInfeasible are returned wrapped and
// can be matched with errors.Is.
func AllocateFleet(
	ctx context.Context,
	req AllocateRequest,
	repo ports.CatalogRepository,
	solver Solver,
) (res *AllocateResult, err error) {
	ctx, done := obs.Time(ctx, "allocate fleet")
	defer done(&err)

	if req.PassengerCount <= 0 {
		metrics.ObserveSolve(modeLabel(SolveStats{}), outcomeLabel(domain.ErrInvalidInput), 0, 0)
		return nil, fmt.Errorf(
			"allocate fleet: passenger_count=%d: %w",
			req.PassengerCount, domain.ErrInvalidInput,
		)
	}

	types := req.VehicleTypes
	if len(types) == 0 {
		if repo == nil {
			return nil, errors.New("allocate fleet: no vehicle types in request and no catalog repository")
		}
		types, err = repo.ListVehicleTypes(ctx)
		if err != nil {
			metrics.ObserveSolve(modeLabel(SolveStats{}), outcomeLabel(err), 0, 0)
			return nil, fmt.Errorf("allocate fleet: list vehicle types: %w", err)
		}
	}

	catalog, err := domain.NewCatalog(types)
	if err != nil {
		metrics.ObserveSolve(modeLabel(SolveStats{}), outcomeLabel(err), 0, 0)
		return nil, fmt.Errorf("allocate fleet: %w", err)
	}

	start := time.Now()
	alloc, stats, err := solver.Allocate(ctx, req.PassengerCount, catalog)
	mode := modeLabel(stats)
	metrics.ObserveSolve(mode, outcomeLabel(err), time.Since(start), stats.NodesVisited)

	zap.L().Debug("solve finished",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("mode", mode),
		zap.Int("passenger_count", req.PassengerCount),
		zap.Int("vehicle_types", catalog.Len()),
		zap.Uint64("search_space", catalog.SearchSpace()),
		zap.Int64("nodes_visited", stats.NodesVisited),
		zap.Int64("leaves_evaluated", stats.LeavesEvaluated),
	)

	if err != nil {
		return nil, fmt.Errorf("allocate fleet: %w", err)
	}

	return &AllocateResult{Allocation: alloc, Catalog: catalog, Stats: stats}, nil
}

func modeLabel(stats SolveStats) string {
	if stats.Workers > 1 {
		return "parallel"
	}
	return "sequential"
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidCatalog):
		return "invalid_catalog"
	case errors.Is(err, domain.ErrCatalogNotFound):
		return "catalog_not_found"
	case errors.Is(err, domain.ErrArithmeticOverflow):
		return "overflow"
	case errors.Is(err, domain.ErrSearchBudgetExceeded):
		return "budget_exceeded"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
