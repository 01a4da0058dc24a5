package converter

import (
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
)

// TechnicianProfileToResponse converts a TechnicianProfile entity to its DTO
func TechnicianProfileToResponse(profile *entity.TechnicianProfile) *dto.TechnicianProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.TechnicianProfileResponse{
		UserID:        profile.UserID,
		FullName:      profile.User.FullName,
		Specialty:     profile.Specialty,
		Biography:     profile.Biography,
		PhoneNumber:   profile.PhoneNumber,
		Rating:        profile.Rating,
		ReviewCount:   profile.ReviewCount,
		CompletedJobs: profile.CompletedJobs,
	}
}

// TechnicianProfilesToResponses converts a slice of TechnicianProfile entities
func TechnicianProfilesToResponses(profiles []entity.TechnicianProfile) []dto.TechnicianProfileResponse {
	responses := make([]dto.TechnicianProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := TechnicianProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
