package repository

import (
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceReviewAggregate holds averaged sub-ratings for one service
type ServiceReviewAggregate struct {
	AvgOverall         float64 `json:"avg_overall"`
	AvgQuality         float64 `json:"avg_quality"`
	AvgPunctuality     float64 `json:"avg_punctuality"`
	AvgProfessionalism float64 `json:"avg_professionalism"`
	AvgValue           float64 `json:"avg_value"`
	Count              int64   `json:"count"`
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *entity.Review) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error)
	// FindPublished returns published reviews newest first, optionally
	// scoped to bookings of one service.
	FindPublished(db *gorm.DB, serviceID *uuid.UUID, limit int) ([]entity.Review, error)
	// OverallRatingsByTechnician reads every overall rating for reviews
	// whose booking references the technician, fresh at call time.
	OverallRatingsByTechnician(db *gorm.DB, technicianID uuid.UUID) ([]int, error)
	AggregateByService(db *gorm.DB, serviceID uuid.UUID) (*ServiceReviewAggregate, error)
	UpdateModeration(db *gorm.DB, id uuid.UUID, published bool, moderationNotes string) error
}
