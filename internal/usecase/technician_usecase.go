package usecase

import (
	"context"
	"errors"

	"github.com/azzbr/handyman-backend/internal/converter"
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTechnicianNotFound = errors.New("technician not found")

type TechnicianUsecase interface {
	GetAll(ctx context.Context) (*dto.TechnicianListResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*dto.TechnicianProfileResponse, error)
}

type technicianUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	technicianRepo repository.TechnicianProfileRepository
}

func NewTechnicianUsecase(db *gorm.DB, log *logrus.Logger, technicianRepo repository.TechnicianProfileRepository) TechnicianUsecase {
	return &technicianUsecase{
		db:             db,
		log:            log,
		technicianRepo: technicianRepo,
	}
}

// GetAll returns the technician directory ordered by rating
func (u *technicianUsecase) GetAll(ctx context.Context) (*dto.TechnicianListResponse, error) {
	profiles, err := u.technicianRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list technicians: %+v", err)
		return nil, err
	}

	return &dto.TechnicianListResponse{
		Technicians: converter.TechnicianProfilesToResponses(profiles),
		Total:       len(profiles),
	}, nil
}

func (u *technicianUsecase) GetByID(ctx context.Context, userID uuid.UUID) (*dto.TechnicianProfileResponse, error) {
	profile, err := u.technicianRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find technician %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrTechnicianNotFound
	}

	return converter.TechnicianProfileToResponse(profile), nil
}
