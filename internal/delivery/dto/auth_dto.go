package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterClientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,password"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
	Address     string `json:"address" validate:"omitempty"`
	Area        string `json:"area" validate:"omitempty,max=100"`
}

type RegisterTechnicianRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6,password"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	Specialty   string `json:"specialty" validate:"required,min=2,max=100"`
	Biography   string `json:"biography" validate:"omitempty"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=8,max=20"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Email             string                     `json:"email"`
	FullName          string                     `json:"full_name"`
	Role              string                     `json:"role"`
	TechnicianProfile *TechnicianProfileResponse `json:"technician_profile,omitempty"`
	ClientProfile     *ClientProfileResponse     `json:"client_profile,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

type ClientProfileResponse struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Area        string `json:"area,omitempty"`
}
