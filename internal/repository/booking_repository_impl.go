package repository

import (
	"errors"
	"time"

	"github.com/azzbr/handyman-backend/internal/domain/entity"
	domainRepo "github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// terminalStatuses are the statuses no guarded transition may leave
var terminalStatuses = []entity.BookingStatus{
	entity.BookingStatusCompleted,
	entity.BookingStatusCancelled,
}

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Preload("Service").Preload("PricingOption").Preload("Technician.User").Preload("Payment").
		Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Technician.User").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTechnicianID(db *gorm.DB, technicianID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Preload("Service").Preload("Client").
		Where("technician_id = ?", technicianID).
		Order("scheduled_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	if err := db.Model(&entity.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Service").Preload("Client").Preload("Technician.User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) FindCompletedByIDAndClient(db *gorm.DB, id, clientID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ? AND client_id = ? AND status = ?", id, clientID, entity.BookingStatusCompleted).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// CancelGuarded cancels only while the booking is still in a non-terminal
// status. Returns affected rows: 1 = success, 0 = lost the race.
func (r *bookingRepository) CancelGuarded(db *gorm.DB, id uuid.UUID, internalNotes string) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status NOT IN ?", id, terminalStatuses).
		Updates(map[string]interface{}{
			"status":         entity.BookingStatusCancelled,
			"internal_notes": internalNotes,
		})
	return result.RowsAffected, result.Error
}

// CompleteGuarded completes only while the booking is still in a non-terminal
// status, so two concurrent completions can never both pass the guard.
func (r *bookingRepository) CompleteGuarded(db *gorm.DB, id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND status NOT IN ?", id, terminalStatuses).
		Updates(map[string]interface{}{
			"status":       entity.BookingStatusCompleted,
			"completed_at": completedAt,
			"final_price":  finalPrice,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Override(db *gorm.DB, id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error {
	updates := map[string]interface{}{
		"status":         status,
		"internal_notes": internalNotes,
	}
	if technicianID != nil {
		updates["technician_id"] = *technicianID
	}
	return db.Model(&entity.Booking{}).Where("id = ?", id).Updates(updates).Error
}
