package dto

type CreateSalonRequestDTO struct {
	Name string `json:"name" example:"Glow Studio"`
}

type SalonResponseDTO struct {
	ID             int64   `json:"id"`
	OwnerID        int64   `json:"owner_id"`
	Name           string  `json:"name"`
	CommissionRate *string `json:"commission_rate,omitempty" example:"12.5"`
}

type SetCommissionRateRequestDTO struct {
	// Rate is a percent within [0, 100]; null restores the platform default.
	Rate *string `json:"rate" example:"12.5"`
}
