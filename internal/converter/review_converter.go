package converter

import (
	"encoding/json"

	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewToResponse converts a Review entity to ReviewResponse DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:                    review.ID,
		BookingID:             review.BookingID,
		OverallRating:         review.OverallRating,
		QualityRating:         review.QualityRating,
		PunctualityRating:     review.PunctualityRating,
		ProfessionalismRating: review.ProfessionalismRating,
		ValueRating:           review.ValueRating,
		Comment:               review.Comment,
		Positives:             review.Positives,
		Improvements:          review.Improvements,
		Published:             review.Published,
		ModerationNotes:       review.ModerationNotes,
		CreatedAt:             review.CreatedAt,
	}

	if review.Photos != "" {
		var photos []string
		if err := json.Unmarshal([]byte(review.Photos), &photos); err == nil {
			response.Photos = photos
		}
	}

	if review.Booking.ID != uuid.Nil {
		response.BookingNumber = review.Booking.BookingNumber
		if review.Booking.Service.ID != uuid.Nil {
			response.ServiceName = review.Booking.Service.Name
		}
		if review.Booking.Technician != nil {
			response.TechnicianName = review.Booking.Technician.User.FullName
		}
	}

	return response
}

// ReviewsToResponses converts a slice of Review entities to ReviewResponse DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp := ReviewToResponse(&review)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
