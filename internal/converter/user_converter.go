package converter

import (
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      entity.RoleNameByID(user.RoleID),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.TechnicianProfile != nil {
		response.TechnicianProfile = TechnicianProfileToResponse(user.TechnicianProfile)
	}
	if user.ClientProfile != nil {
		response.ClientProfile = &dto.ClientProfileResponse{
			PhoneNumber: user.ClientProfile.PhoneNumber,
			Address:     user.ClientProfile.Address,
			Area:        user.ClientProfile.Area,
		}
	}

	return response
}
