package repository

import (
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Service, int64, error)
	FindAllActive(db *gorm.DB) ([]entity.Service, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
	Delete(db *gorm.DB, id uuid.UUID) error
	CreatePricingOption(db *gorm.DB, option *entity.PricingOption) error
	FindPricingOptionByID(db *gorm.DB, id uuid.UUID) (*entity.PricingOption, error)
}
