package dto

import "time"

type RequestPayoutRequestDTO struct {
	SalonID     int64  `json:"salon_id" example:"1"`
	Amount      int64  `json:"amount" example:"8500"`
	BankDetails string `json:"bank_details" example:"IBAN DE89370400440532013000"`
}

type ProcessPayoutRequestDTO struct {
	Decision string  `json:"decision" example:"approved"`
	Notes    *string `json:"notes,omitempty"`
}

type PayoutResponseDTO struct {
	ID          int64      `json:"id"`
	SalonID     int64      `json:"salon_id"`
	WalletID    int64      `json:"wallet_id"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	BankDetails string     `json:"bank_details"`
	ProcessedBy *int64     `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
