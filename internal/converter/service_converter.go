package converter

import (
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	options := make([]dto.PricingOptionResponse, len(service.PricingOptions))
	for i, option := range service.PricingOptions {
		options[i] = dto.PricingOptionResponse{
			ID:              option.ID,
			Name:            option.Name,
			Price:           option.Price,
			DurationMinutes: option.DurationMinutes,
		}
	}

	return &dto.ServiceResponse{
		ID:             service.ID,
		Name:           service.Name,
		Description:    service.Description,
		Category:       service.Category,
		IsActive:       service.IsActive,
		PricingOptions: options,
		CreatedAt:      service.CreatedAt,
		UpdatedAt:      service.UpdatedAt,
	}
}

// ServicesToResponses converts a slice of Service entities to DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		resp := ServiceToResponse(&service)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
