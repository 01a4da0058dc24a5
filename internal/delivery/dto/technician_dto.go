package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TechnicianProfileResponse struct {
	UserID        uuid.UUID       `json:"user_id"`
	FullName      string          `json:"full_name,omitempty"`
	Specialty     string          `json:"specialty"`
	Biography     string          `json:"biography,omitempty"`
	PhoneNumber   string          `json:"phone_number,omitempty"`
	Rating        decimal.Decimal `json:"rating"`
	ReviewCount   int             `json:"review_count"`
	CompletedJobs int             `json:"completed_jobs"`
}

type TechnicianListResponse struct {
	Technicians []TechnicianProfileResponse `json:"technicians"`
	Total       int                         `json:"total"`
}
