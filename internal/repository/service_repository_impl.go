package repository

import (
	"errors"

	"github.com/azzbr/handyman-backend/internal/domain/entity"
	domainRepo "github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(db *gorm.DB, service *entity.Service) error {
	return db.Create(service).Error
}

func (r *serviceRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Service, int64, error) {
	var services []entity.Service
	var total int64

	if err := db.Model(&entity.Service{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("PricingOptions").
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&services).Error
	if err != nil {
		return nil, 0, err
	}
	return services, total, nil
}

func (r *serviceRepository) FindAllActive(db *gorm.DB) ([]entity.Service, error) {
	var services []entity.Service
	err := db.Preload("PricingOptions").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.Preload("PricingOptions").Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) Update(db *gorm.DB, service *entity.Service) error {
	return db.Save(service).Error
}

func (r *serviceRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Service{}).Error
}

func (r *serviceRepository) CreatePricingOption(db *gorm.DB, option *entity.PricingOption) error {
	return db.Create(option).Error
}

func (r *serviceRepository) FindPricingOptionByID(db *gorm.DB, id uuid.UUID) (*entity.PricingOption, error) {
	var option entity.PricingOption
	err := db.Where("id = ?", id).First(&option).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &option, nil
}
