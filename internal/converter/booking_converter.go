package converter

import (
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:             booking.ID,
		BookingNumber:  booking.BookingNumber,
		Status:         string(booking.Status),
		ScheduledDate:  booking.ScheduledDate,
		TimeSlot:       booking.TimeSlot,
		EstimatedPrice: booking.EstimatedPrice,
		FinalPrice:     booking.FinalPrice,
		CompletedAt:    booking.CompletedAt,
		Notes:          booking.Notes,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}

	if booking.Service.ID != uuid.Nil {
		response.ServiceName = booking.Service.Name
	}
	if booking.Technician != nil && booking.Technician.User.FullName != "" {
		response.TechnicianName = booking.Technician.User.FullName
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := BookingToResponse(&booking)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PaymentToResponse converts a Payment entity to PaymentResponse DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:     payment.ID,
		Amount: payment.Amount,
		Method: string(payment.Method),
		Status: string(payment.Status),
		PaidAt: payment.PaidAt,
	}
}
