package services

import "fleet-allocation-service/internal/domain"

// better reports whether candidate should replace best.
//
// Fewer leftover seats wins; on equal leftover, fewer vehicles wins. Exact ties return
// false so the incumbent, which was discovered first, is kept. Every search path and
// every reduction of partial results must go through this function.
func better(candidate domain.Allocation, best *domain.Allocation) bool {
	if best == nil {
		return true
	}
	if candidate.Leftover != best.Leftover {
		return candidate.Leftover < best.Leftover
	}
	return candidate.VehiclesUsed < best.VehiclesUsed
}
