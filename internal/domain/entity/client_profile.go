package entity

import "github.com/google/uuid"

// ClientProfile represents customer-specific profile data
type ClientProfile struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	Area        string    `gorm:"type:varchar(100);index" json:"area,omitempty"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ClientID" json:"bookings,omitempty"`
}

func (ClientProfile) TableName() string {
	return "client_profiles"
}
