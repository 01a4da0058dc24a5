package repository

import (
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ClientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.ClientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientProfile, error)
	Update(db *gorm.DB, profile *entity.ClientProfile) error
}

type TechnicianProfileRepository interface {
	Create(db *gorm.DB, profile *entity.TechnicianProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TechnicianProfile, error)
	FindAll(db *gorm.DB) ([]entity.TechnicianProfile, error)
	Update(db *gorm.DB, profile *entity.TechnicianProfile) error
	// UpdateRatingAggregates overwrites the rating and review count with
	// freshly recomputed values.
	UpdateRatingAggregates(db *gorm.DB, userID uuid.UUID, rating decimal.Decimal, reviewCount int) error
	IncrementCompletedJobs(db *gorm.DB, userID uuid.UUID) error
}
