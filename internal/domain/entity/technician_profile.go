package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TechnicianProfile represents technician-specific profile data including
// the review aggregates that are recomputed whenever a review lands.
type TechnicianProfile struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialty     string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Biography     string          `gorm:"type:text" json:"biography,omitempty"`
	PhoneNumber   string          `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Rating        decimal.Decimal `gorm:"type:decimal(3,1);not null;default:0" json:"rating"`
	ReviewCount   int             `gorm:"not null;default:0" json:"review_count"`
	CompletedJobs int             `gorm:"not null;default:0" json:"completed_jobs"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:TechnicianID" json:"bookings,omitempty"`
}

func (TechnicianProfile) TableName() string {
	return "technician_profiles"
}
