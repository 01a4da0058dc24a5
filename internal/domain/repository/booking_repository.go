package repository

import (
	"time"

	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error)
	FindByTechnicianID(db *gorm.DB, technicianID uuid.UUID) ([]entity.Booking, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Booking, int64, error)
	// FindCompletedByIDAndClient returns the booking only when it exists,
	// is owned by the given client and has reached COMPLETED.
	FindCompletedByIDAndClient(db *gorm.DB, id, clientID uuid.UUID) (*entity.Booking, error)
	// CancelGuarded atomically cancels a booking ONLY while it is in a
	// non-terminal status. Returns affected rows: 1 = success, 0 = lost the
	// race to a concurrent terminal transition.
	CancelGuarded(db *gorm.DB, id uuid.UUID, internalNotes string) (int64, error)
	// CompleteGuarded atomically completes a booking ONLY while it is in a
	// non-terminal status, stamping completedAt and the final price.
	CompleteGuarded(db *gorm.DB, id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error)
	// Override unconditionally rewrites status, notes and optionally the
	// assigned technician. No transition guard: admin escape hatch only.
	Override(db *gorm.DB, id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error
}
