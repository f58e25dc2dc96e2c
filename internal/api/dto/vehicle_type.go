package dto

type VehicleType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	MaxCount int    `json:"max_count"`
}

type ListVehicleTypesResponse struct {
	VehicleTypes []VehicleType `json:"vehicle_types"`
}
