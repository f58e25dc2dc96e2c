package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"fleet-allocation-service/internal/api/dto"
	"fleet-allocation-service/internal/domain"
	"fleet-allocation-service/internal/platform/obs"
	"fleet-allocation-service/internal/ports"
)

// VehicleTypeHandler exposes the configured catalog read-only.
type VehicleTypeHandler struct {
	Repo ports.CatalogRepository
}

func (h *VehicleTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.Repo.ListVehicleTypes(r.Context())
	if errors.Is(err, domain.ErrCatalogNotFound) {
		writeError(w, r, http.StatusServiceUnavailable, catalogNotFoundMessage)
		return
	}
	if err != nil {
		zap.L().Error("list vehicle types failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVehicleTypesResponse{
		VehicleTypes: make([]dto.VehicleType, 0, len(types)),
	}
	for _, vt := range types {
		res.VehicleTypes = append(res.VehicleTypes, dto.VehicleType{
			ID:       vt.ID,
			Name:     vt.Name,
			Capacity: vt.Capacity,
			MaxCount: vt.MaxCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
