package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusAssigned   BookingStatus = "ASSIGNED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
	BookingStatusRefunded   BookingStatus = "REFUNDED"
)

// BookingStatuses is the closed set of valid statuses
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusAssigned,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusRefunded,
}

// IsValidBookingStatus reports whether s is one of the enumerated statuses
func IsValidBookingStatus(s string) bool {
	for _, status := range BookingStatuses {
		if string(status) == s {
			return true
		}
	}
	return false
}

// Booking represents a customer booking for a handyman service
type Booking struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingNumber   string           `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_number"`
	ClientID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	TechnicianID    *uuid.UUID       `gorm:"type:uuid;index" json:"technician_id,omitempty"`
	ServiceID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"service_id"`
	PricingOptionID uuid.UUID        `gorm:"type:uuid;not null" json:"pricing_option_id"`
	Status          BookingStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ScheduledDate   time.Time        `gorm:"not null;index" json:"scheduled_date"`
	TimeSlot        string           `gorm:"type:varchar(50)" json:"time_slot,omitempty"`
	EstimatedPrice  decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"estimated_price"`
	FinalPrice      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_price,omitempty"`
	CompletedAt     *time.Time       `json:"completed_at,omitempty"`
	Notes           string           `gorm:"type:text" json:"notes,omitempty"`
	InternalNotes   string           `gorm:"type:text" json:"-"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Client        User               `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Technician    *TechnicianProfile `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Service       Service            `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	PricingOption PricingOption      `gorm:"foreignKey:PricingOptionID" json:"pricing_option,omitempty"`
	Payment       *Payment           `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
	Review        *Review            `gorm:"foreignKey:BookingID" json:"review,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsCompleted checks if booking has been completed
func (b *Booking) IsCompleted() bool {
	return b.Status == BookingStatusCompleted
}

// IsCancelled checks if booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}

// IsTerminal reports whether no guarded transition may leave this status.
// REFUNDED is reachable from COMPLETED only through the admin override.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// IsAssignedTo checks whether the given technician is assigned to this booking
func (b *Booking) IsAssignedTo(technicianID uuid.UUID) bool {
	return b.TechnicianID != nil && *b.TechnicianID == technicianID
}

// IsOwnedBy checks whether the given client owns this booking
func (b *Booking) IsOwnedBy(clientID uuid.UUID) bool {
	return b.ClientID == clientID
}
