package dto

import (
	"time"

	"github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
)

// Request DTOs

type SubmitReviewRequest struct {
	OverallRating         int    `json:"overall_rating" validate:"required,gte=1,lte=5"`
	QualityRating         *int   `json:"quality_rating" validate:"omitempty,gte=1,lte=5"`
	PunctualityRating     *int   `json:"punctuality_rating" validate:"omitempty,gte=1,lte=5"`
	ProfessionalismRating *int   `json:"professionalism_rating" validate:"omitempty,gte=1,lte=5"`
	ValueRating           *int   `json:"value_rating" validate:"omitempty,gte=1,lte=5"`
	Comment               string `json:"comment" validate:"omitempty,max=2000"`
	Positives             string `json:"positives" validate:"omitempty,max=2000"`
	Improvements          string `json:"improvements" validate:"omitempty,max=2000"`
}

type SubmitPublicReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Photos    []string  `json:"photos" validate:"omitempty,max=10"`
	SubmitReviewRequest
}

type ModerateReviewRequest struct {
	ReviewID uuid.UUID `json:"review_id" validate:"required"`
	Action   string    `json:"action" validate:"required"`
	Notes    string    `json:"notes" validate:"omitempty,max=1000"`
}

// Response DTOs

type ReviewResponse struct {
	ID                    uuid.UUID `json:"id"`
	BookingID             uuid.UUID `json:"booking_id"`
	OverallRating         int       `json:"overall_rating"`
	QualityRating         *int      `json:"quality_rating,omitempty"`
	PunctualityRating     *int      `json:"punctuality_rating,omitempty"`
	ProfessionalismRating *int      `json:"professionalism_rating,omitempty"`
	ValueRating           *int      `json:"value_rating,omitempty"`
	Comment               string    `json:"comment,omitempty"`
	Positives             string    `json:"positives,omitempty"`
	Improvements          string    `json:"improvements,omitempty"`
	Photos                []string  `json:"photos,omitempty"`
	Published             bool      `json:"published"`
	ModerationNotes       string    `json:"moderation_notes,omitempty"`
	ServiceName           string    `json:"service_name,omitempty"`
	TechnicianName        string    `json:"technician_name,omitempty"`
	BookingNumber         string    `json:"booking_number,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews   []ReviewResponse                   `json:"reviews"`
	Total     int                                `json:"total"`
	Aggregate *repository.ServiceReviewAggregate `json:"aggregate,omitempty"`
}
