package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
	"fleet-allocation-service/internal/services"
)

const maxBodyBytes = 1 << 20

const catalogNotFoundMessage = "vehicle catalog is not loaded; seed it or send vehicle_types inline"

type AllocationHandler struct {
	Repo   ports.CatalogRepository
	Solver services.Solver
}

// Create solves one allocation. An infeasible request is a normal outcome and is
// answered with 200 and feasible=false.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AllocationRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.PassengerCount == nil {
		writeError(w, r, http.StatusBadRequest, "passenger_count is required")
		return
	}

	svcReq := services.AllocateRequest{PassengerCount: *req.PassengerCount}
	for _, vt := range req.VehicleTypes {
		svcReq.VehicleTypes = append(svcReq.VehicleTypes, domain.VehicleType{
			ID:       vt.ID,
			Name:     vt.Name,
			Capacity: vt.Capacity,
			MaxCount: vt.MaxCount,
		})
	}

	res, err := services.AllocateFleet(r.Context(), svcReq, h.Repo, h.Solver)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInfeasible):
		writeJSON(w, r, http.StatusOK, dto.InfeasibleResponse{
			Feasible:       false,
			PassengerCount: svcReq.PassengerCount,
			Reason:         domain.ErrInfeasible.Error(),
		})
		return
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidCatalog):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, domain.ErrCatalogNotFound):
		writeError(w, r, http.StatusServiceUnavailable, catalogNotFoundMessage)
		return
	case errors.Is(err, domain.ErrArithmeticOverflow), errors.Is(err, domain.ErrSearchBudgetExceeded):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	default:
		zap.L().Error("allocate fleet failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	alloc := res.Allocation
	out := dto.AllocationResponse{
		Feasible:       true,
		PassengerCount: alloc.PassengerCount,
		SeatsUsed:      alloc.SeatsUsed,
		Leftover:       alloc.Leftover,
		VehiclesUsed:   alloc.VehiclesUsed,
		Assignment:     alloc.Assignment,
		Lines:          make([]dto.AllocationLineResponse, 0, len(alloc.Assignment)),
	}
	for _, line := range alloc.Lines(res.Catalog) {
		out.Lines = append(out.Lines, dto.AllocationLineResponse{
			ID:       line.VehicleType.ID,
			Name:     line.VehicleType.Name,
			Capacity: line.VehicleType.Capacity,
			Count:    line.Count,
			Seats:    line.Seats,
		})
	}

	writeJSON(w, r, http.StatusOK, out)
}
