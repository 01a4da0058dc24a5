package repository

import (
	"errors"

	"github.com/azzbr/handyman-backend/internal/domain/entity"
	domainRepo "github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(db *gorm.DB, review *entity.Review) error {
	return db.Create(review).Error
}

func (r *reviewRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	err := db.Preload("Booking.Service").Preload("Booking.Technician.User").Preload("Client").
		Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindPublished(db *gorm.DB, serviceID *uuid.UUID, limit int) ([]entity.Review, error) {
	var reviews []entity.Review

	query := db.Preload("Booking.Service").Preload("Client").
		Where("reviews.published = ?", true)

	if serviceID != nil {
		query = query.Joins("JOIN bookings ON bookings.id = reviews.booking_id").
			Where("bookings.service_id = ?", *serviceID)
	}

	err := query.Order("reviews.created_at DESC").Limit(limit).Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// OverallRatingsByTechnician reads all overall ratings for the technician
// fresh, so the aggregate never drifts from a full recompute.
func (r *reviewRepository) OverallRatingsByTechnician(db *gorm.DB, technicianID uuid.UUID) ([]int, error) {
	var ratings []int
	err := db.Model(&entity.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.technician_id = ?", technicianID).
		Pluck("reviews.overall_rating", &ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *reviewRepository) AggregateByService(db *gorm.DB, serviceID uuid.UUID) (*domainRepo.ServiceReviewAggregate, error) {
	var agg domainRepo.ServiceReviewAggregate
	err := db.Model(&entity.Review{}).
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Where("bookings.service_id = ? AND reviews.published = ?", serviceID, true).
		Select(`COALESCE(AVG(reviews.overall_rating), 0) AS avg_overall,
			COALESCE(AVG(reviews.quality_rating), 0) AS avg_quality,
			COALESCE(AVG(reviews.punctuality_rating), 0) AS avg_punctuality,
			COALESCE(AVG(reviews.professionalism_rating), 0) AS avg_professionalism,
			COALESCE(AVG(reviews.value_rating), 0) AS avg_value,
			COUNT(*) AS count`).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

func (r *reviewRepository) UpdateModeration(db *gorm.DB, id uuid.UUID, published bool, moderationNotes string) error {
	return db.Model(&entity.Review{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"published":        published,
			"moderation_notes": moderationNotes,
		}).Error
}
