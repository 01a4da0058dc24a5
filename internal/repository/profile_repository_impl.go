package repository

import (
	"errors"

	"github.com/azzbr/handyman-backend/internal/domain/entity"
	domainRepo "github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type clientProfileRepository struct{}

func NewClientProfileRepository() domainRepo.ClientProfileRepository {
	return &clientProfileRepository{}
}

func (r *clientProfileRepository) Create(db *gorm.DB, profile *entity.ClientProfile) error {
	return db.Create(profile).Error
}

func (r *clientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.ClientProfile, error) {
	var profile entity.ClientProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *clientProfileRepository) Update(db *gorm.DB, profile *entity.ClientProfile) error {
	return db.Save(profile).Error
}

type technicianProfileRepository struct{}

func NewTechnicianProfileRepository() domainRepo.TechnicianProfileRepository {
	return &technicianProfileRepository{}
}

func (r *technicianProfileRepository) Create(db *gorm.DB, profile *entity.TechnicianProfile) error {
	return db.Create(profile).Error
}

func (r *technicianProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TechnicianProfile, error) {
	var profile entity.TechnicianProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *technicianProfileRepository) FindAll(db *gorm.DB) ([]entity.TechnicianProfile, error) {
	var profiles []entity.TechnicianProfile
	err := db.Preload("User").Order("rating DESC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *technicianProfileRepository) Update(db *gorm.DB, profile *entity.TechnicianProfile) error {
	return db.Save(profile).Error
}

func (r *technicianProfileRepository) UpdateRatingAggregates(db *gorm.DB, userID uuid.UUID, rating decimal.Decimal, reviewCount int) error {
	return db.Model(&entity.TechnicianProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}

func (r *technicianProfileRepository) IncrementCompletedJobs(db *gorm.DB, userID uuid.UUID) error {
	return db.Model(&entity.TechnicianProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1")).Error
}
