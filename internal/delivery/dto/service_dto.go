package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty"`
	Category    string `json:"category" validate:"omitempty,max=100"`
}

type UpdateServiceRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty"`
	Category    string `json:"category" validate:"omitempty,max=100"`
	IsActive    bool   `json:"is_active"`
}

type CreatePricingOptionRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=255"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,min=15"`
}

// Response DTOs

type PricingOptionResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type ServiceResponse struct {
	ID             uuid.UUID               `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	Category       string                  `json:"category,omitempty"`
	IsActive       bool                    `json:"is_active"`
	PricingOptions []PricingOptionResponse `json:"pricing_options,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int64             `json:"total"`
}
