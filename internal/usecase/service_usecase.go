package usecase

import (
	"context"
	"errors"

	"github.com/azzbr/handyman-backend/internal/converter"
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
	"github.com/azzbr/handyman-backend/internal/domain/repository"
	svc "github.com/azzbr/handyman-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceNameTaken = errors.New("a service with this name already exists")
)

type ServiceUsecase interface {
	Create(ctx context.Context, actor entity.Identity, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	GetAll(ctx context.Context, page, limit int) (*dto.ServiceListResponse, error)
	GetActive(ctx context.Context) (*dto.ServiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, actor entity.Identity, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, actor entity.Identity, id uuid.UUID) error
	AddPricingOption(ctx context.Context, actor entity.Identity, serviceID uuid.UUID, req *dto.CreatePricingOptionRequest) (*dto.ServiceResponse, error)
}

type serviceUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	serviceRepo  repository.ServiceRepository
	auditService svc.AuditService
}

func NewServiceUsecase(db *gorm.DB, log *logrus.Logger, serviceRepo repository.ServiceRepository, auditService svc.AuditService) ServiceUsecase {
	return &serviceUsecase{
		db:           db,
		log:          log,
		serviceRepo:  serviceRepo,
		auditService: auditService,
	}
}

func (u *serviceUsecase) Create(ctx context.Context, actor entity.Identity, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	service := &entity.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    true,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.serviceRepo.Create(tx, service); err != nil {
			if isDuplicateKeyError(err, "name") {
				return ErrServiceNameTaken
			}
			return err
		}
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionServiceCreate,
			"service", service.ID.String(), nil, service.Name)
	})
	if err != nil {
		if errors.Is(err, ErrServiceNameTaken) {
			return nil, err
		}
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) GetAll(ctx context.Context, page, limit int) (*dto.ServiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	services, total, err := u.serviceRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    total,
	}, nil
}

func (u *serviceUsecase) GetActive(ctx context.Context) (*dto.ServiceListResponse, error) {
	services, err := u.serviceRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list active services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    int64(len(services)),
	}, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	service, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) Update(ctx context.Context, actor entity.Identity, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	service, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	oldName := service.Name
	service.Name = req.Name
	service.Description = req.Description
	service.Category = req.Category
	service.IsActive = req.IsActive

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.serviceRepo.Update(tx, service); err != nil {
			if isDuplicateKeyError(err, "name") {
				return ErrServiceNameTaken
			}
			return err
		}
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionServiceUpdate,
			"service", id.String(), oldName, service.Name)
	})
	if err != nil {
		if errors.Is(err, ErrServiceNameTaken) {
			return nil, err
		}
		u.log.Warnf("Failed to update service %s: %+v", id, err)
		return nil, err
	}

	return converter.ServiceToResponse(service), nil
}

func (u *serviceUsecase) Delete(ctx context.Context, actor entity.Identity, id uuid.UUID) error {
	service, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return err
	}
	if service == nil {
		return ErrServiceNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.serviceRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionServiceDelete,
			"service", id.String(), service.Name, nil)
	})
	if err != nil {
		u.log.Warnf("Failed to delete service %s: %+v", id, err)
		return err
	}

	return nil
}

func (u *serviceUsecase) AddPricingOption(ctx context.Context, actor entity.Identity, serviceID uuid.UUID, req *dto.CreatePricingOptionRequest) (*dto.ServiceResponse, error) {
	service, err := u.serviceRepo.FindByID(u.db.WithContext(ctx), serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	option := &entity.PricingOption{
		ServiceID:       serviceID,
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}
	if option.DurationMinutes == 0 {
		option.DurationMinutes = 60
	}

	if err := u.serviceRepo.CreatePricingOption(u.db.WithContext(ctx), option); err != nil {
		u.log.Warnf("Failed to add pricing option to service %s: %+v", serviceID, err)
		return nil, err
	}

	service.PricingOptions = append(service.PricingOptions, *option)
	return converter.ServiceToResponse(service), nil
}
