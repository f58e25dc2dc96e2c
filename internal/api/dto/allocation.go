package dto

type AllocationRequest struct {
	// Pointer so a missing field can be told apart from an explicit 0.
	PassengerCount *int `json:"passenger_count"`
	// Optional; the configured catalog is used when empty.
	VehicleTypes []VehicleType `json:"vehicle_types"`
}

type AllocationLineResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Count    int    `json:"count"`
	Seats    int    `json:"seats"`
}

type AllocationResponse struct {
	Feasible       bool                     `json:"feasible"`
	PassengerCount int                      `json:"passenger_count"`
	SeatsUsed      int                      `json:"seats_used"`
	Leftover       int                      `json:"leftover"`
	VehiclesUsed   int                      `json:"vehicles_used"`
	Assignment     []int                    `json:"assignment"`
	Lines          []AllocationLineResponse `json:"lines"`
}

type InfeasibleResponse struct {
	Feasible       bool   `json:"feasible"`
	PassengerCount int    `json:"passenger_count"`
	Reason         string `json:"reason"`
}
