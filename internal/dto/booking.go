package dto

import "time"

type CreateBookingRequestDTO struct {
	SalonID       int64  `json:"salon_id" example:"1"`
	StaffID       int64  `json:"staff_id" example:"7"`
	ServiceID     int64  `json:"service_id" example:"3"`
	Date          string `json:"date" example:"2025-06-01"`
	StartMin      int    `json:"start_min" example:"840"`
	DurationMin   int    `json:"duration_min" example:"60"`
	TotalAmount   int64  `json:"total_amount" example:"10000"`
	PaymentMethod string `json:"payment_method" example:"online"`
}

type BookingResponseDTO struct {
	ID                 int64     `json:"id"`
	CustomerID         int64     `json:"customer_id"`
	SalonID            int64     `json:"salon_id"`
	StaffID            int64     `json:"staff_id"`
	ServiceID          int64     `json:"service_id"`
	Date               string    `json:"date" example:"2025-06-01"`
	StartMin           int       `json:"start_min"`
	EndMin             int       `json:"end_min"`
	Status             string    `json:"status"`
	TotalAmount        int64     `json:"total_amount"`
	PlatformCommission int64     `json:"platform_commission"`
	VendorPayout       int64     `json:"vendor_payout"`
	PaymentMethod      string    `json:"payment_method"`
	PaymentStatus      string    `json:"payment_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type TransitionBookingRequestDTO struct {
	Status string `json:"status" example:"confirmed"`
}

type RescheduleBookingRequestDTO struct {
	Date        string `json:"date" example:"2025-06-02"`
	StartMin    int    `json:"start_min" example:"900"`
	DurationMin int    `json:"duration_min" example:"60"`
}

type ConflictResponseDTO struct {
	Kind                 string `json:"kind" example:"conflict"`
	ConflictingBookingID int64  `json:"conflicting_booking_id"`
}
