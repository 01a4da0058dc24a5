package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a client review of a completed booking.
// The unique index on BookingID enforces at most one review per booking;
// concurrent submissions are resolved by the constraint, not by a pre-read.
type Review struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	ClientID              uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	OverallRating         int       `gorm:"not null;check:overall_rating >= 1 AND overall_rating <= 5" json:"overall_rating"`
	QualityRating         *int      `json:"quality_rating,omitempty"`
	PunctualityRating     *int      `json:"punctuality_rating,omitempty"`
	ProfessionalismRating *int      `json:"professionalism_rating,omitempty"`
	ValueRating           *int      `json:"value_rating,omitempty"`
	Comment               string    `gorm:"type:text" json:"comment,omitempty"`
	Positives             string    `gorm:"type:text" json:"positives,omitempty"`
	Improvements          string    `gorm:"type:text" json:"improvements,omitempty"`
	Photos                string    `gorm:"type:text" json:"photos,omitempty"`
	Published             bool      `gorm:"not null;default:false;index" json:"published"`
	ModerationNotes       string    `gorm:"type:text" json:"moderation_notes,omitempty"`
	CreatedAt             time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
	Client  User    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ModerationAction is the closed set of admin moderation actions
type ModerationAction string

const (
	ModerationActionApprove ModerationAction = "approve"
	ModerationActionDeny    ModerationAction = "deny"
)

// IsValidModerationAction reports whether a is one of the two action literals
func IsValidModerationAction(a string) bool {
	return a == string(ModerationActionApprove) || a == string(ModerationActionDeny)
}

// Default moderation notes applied when the admin supplies none
const (
	ModerationNoteApproved = "Approved for publication"
	ModerationNoteRejected = "Rejected by admin"
)
