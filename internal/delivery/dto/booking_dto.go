package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type CompleteBookingRequest struct {
	PaymentReceived bool `json:"payment_received"`
}

type AdminUpdateBookingStatusRequest struct {
	Status       string     `json:"status" validate:"required"`
	TechnicianID *uuid.UUID `json:"technician_id" validate:"omitempty"`
	Notes        string     `json:"notes" validate:"omitempty,max=1000"`
}

// Response DTOs

type BookingResponse struct {
	ID             uuid.UUID        `json:"id"`
	BookingNumber  string           `json:"booking_number"`
	Status         string           `json:"status"`
	ScheduledDate  time.Time        `json:"scheduled_date"`
	TimeSlot       string           `json:"time_slot,omitempty"`
	ServiceName    string           `json:"service_name,omitempty"`
	TechnicianName string           `json:"technician_name,omitempty"`
	EstimatedPrice decimal.Decimal  `json:"estimated_price"`
	FinalPrice     *decimal.Decimal `json:"final_price,omitempty"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type PaymentResponse struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Status string          `json:"status"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

type CompleteBookingResponse struct {
	Booking BookingResponse  `json:"booking"`
	Payment *PaymentResponse `json:"payment,omitempty"`
}
