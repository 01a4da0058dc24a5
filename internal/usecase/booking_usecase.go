package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/azzbr/handyman-backend/internal/converter"
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
	"github.com/azzbr/handyman-backend/internal/domain/repository"
	"github.com/azzbr/handyman-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound          = errors.New("booking not found")
	ErrBookingAccessDenied      = errors.New("booking does not belong to you")
	ErrBookingNotCancellable    = errors.New("booking can no longer be cancelled")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")
	ErrBookingNotCompletable    = errors.New("booking is not in a completable state")
	ErrInvalidBookingStatus     = errors.New("unrecognized booking status")
)

const defaultCancelNote = "Cancelled without a stated reason"

type BookingUsecase interface {
	GetMyBookings(ctx context.Context, actor entity.Identity) (*dto.BookingListResponse, error)
	GetAssignedBookings(ctx context.Context, actor entity.Identity) (*dto.BookingListResponse, error)
	AdminListBookings(ctx context.Context, page, limit int) ([]dto.BookingResponse, int64, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.CompleteBookingRequest) (*dto.CompleteBookingResponse, error)
	AdminUpdateStatus(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.AdminUpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

type bookingUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	cancelWindow   time.Duration
	bookingRepo    repository.BookingRepository
	paymentRepo    repository.PaymentRepository
	technicianRepo repository.TechnicianProfileRepository
	auditService   service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cancelWindow time.Duration,
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	technicianRepo repository.TechnicianProfileRepository,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:             db,
		log:            log,
		cancelWindow:   cancelWindow,
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		technicianRepo: technicianRepo,
		auditService:   auditService,
	}
}

// GetMyBookings returns all bookings owned by the calling client
func (u *bookingUsecase) GetMyBookings(ctx context.Context, actor entity.Identity) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByClientID(u.db.WithContext(ctx), actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for client %s: %+v", actor.UserID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// GetAssignedBookings returns all bookings assigned to the calling technician
func (u *bookingUsecase) GetAssignedBookings(ctx context.Context, actor entity.Identity) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByTechnicianID(u.db.WithContext(ctx), actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for technician %s: %+v", actor.UserID, err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) AdminListBookings(ctx context.Context, page, limit int) ([]dto.BookingResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	bookings, total, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, 0, err
	}

	return converter.BookingsToResponses(bookings), total, nil
}

// Cancel cancels a booking on behalf of the owning client, the assigned
// technician or an admin. Non-admin callers are bound by the cancellation
// window before the scheduled time; admins bypass it.
//
// Flow:
// 1. Find booking, verify the caller may touch it
// 2. Reject terminal statuses
// 3. Enforce the cancellation window for non-admins
// 4. Status-guarded update + audit entry in one transaction
func (u *bookingUsecase) Cancel(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !actor.IsAdmin() && !booking.IsOwnedBy(actor.UserID) && !booking.IsAssignedTo(actor.UserID) {
		return nil, ErrBookingAccessDenied
	}

	if booking.IsTerminal() {
		return nil, ErrBookingNotCancellable
	}

	if !actor.IsAdmin() && time.Until(booking.ScheduledDate) < u.cancelWindow {
		return nil, ErrCancellationWindowClosed
	}

	note := req.Reason
	if note == "" {
		note = defaultCancelNote
	}

	oldStatus := booking.Status
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.bookingRepo.CancelGuarded(tx, bookingID, note)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost a race against a concurrent terminal transition.
			return ErrBookingNotCancellable
		}

		// Existing payments are intentionally untouched: cash needs no
		// refund action and anything else is manual follow-up.
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionBookingCancel,
			"booking", bookingID.String(), string(oldStatus), string(entity.BookingStatusCancelled))
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotCancellable) {
			return nil, err
		}
		u.log.Warnf("Failed to cancel booking %s: %+v", bookingID, err)
		return nil, err
	}

	booking.Status = entity.BookingStatusCancelled
	booking.InternalNotes = note

	u.log.Infof("Booking cancelled: id=%s, number=%s, by=%s", bookingID, booking.BookingNumber, actor.UserID)
	return converter.BookingToResponse(booking), nil
}

// Complete marks a booking completed on behalf of the assigned technician or
// an admin. The status change, the optional payment row and the technician
// counter move in one transaction; a partially completed booking is never
// observable.
func (u *bookingUsecase) Complete(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.CompleteBookingRequest) (*dto.CompleteBookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !actor.IsAdmin() && !booking.IsAssignedTo(actor.UserID) {
		return nil, ErrBookingAccessDenied
	}

	now := time.Now()
	var payment *entity.Payment

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Cash settlement: the estimate becomes the final price.
		rows, err := u.bookingRepo.CompleteGuarded(tx, bookingID, now, booking.EstimatedPrice)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrBookingNotCompletable
		}

		if req.PaymentReceived {
			paidAt := now
			payment = &entity.Payment{
				BookingID: bookingID,
				Amount:    booking.EstimatedPrice,
				Method:    entity.PaymentMethodCash,
				Status:    entity.PaymentStatusPaid,
				PaidAt:    &paidAt,
			}
			if err := u.paymentRepo.Create(tx, payment); err != nil {
				return err
			}

			if booking.TechnicianID != nil {
				if err := u.technicianRepo.IncrementCompletedJobs(tx, *booking.TechnicianID); err != nil {
					return err
				}
			}
		}

		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionBookingComplete,
			"booking", bookingID.String(), string(booking.Status), string(entity.BookingStatusCompleted))
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotCompletable) {
			return nil, err
		}
		u.log.Errorf("Failed to complete booking %s: %+v", bookingID, err)
		return nil, err
	}

	finalPrice := booking.EstimatedPrice
	booking.Status = entity.BookingStatusCompleted
	booking.CompletedAt = &now
	booking.FinalPrice = &finalPrice

	u.log.Infof("Booking completed: id=%s, number=%s, payment_received=%t", bookingID, booking.BookingNumber, req.PaymentReceived)
	return &dto.CompleteBookingResponse{
		Booking: *converter.BookingToResponse(booking),
		Payment: converter.PaymentToResponse(payment),
	}, nil
}

// AdminUpdateStatus is the administrative override. It accepts any status in
// the enumerated set without consulting the transition graph, so it must stay
// gated behind the admin role at the router.
func (u *bookingUsecase) AdminUpdateStatus(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.AdminUpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if !entity.IsValidBookingStatus(req.Status) {
		return nil, ErrInvalidBookingStatus
	}
	newStatus := entity.BookingStatus(req.Status)

	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	oldStatus := booking.Status
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.bookingRepo.Override(tx, bookingID, newStatus, req.TechnicianID, req.Notes); err != nil {
			if isForeignKeyError(err, "technician") {
				return ErrTechnicianNotFound
			}
			return err
		}
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionBookingStatusOverride,
			"booking", bookingID.String(), string(oldStatus), req.Status)
	})
	if err != nil {
		if errors.Is(err, ErrTechnicianNotFound) {
			return nil, err
		}
		u.log.Warnf("Failed to override booking %s status: %+v", bookingID, err)
		return nil, err
	}

	booking.Status = newStatus
	booking.InternalNotes = req.Notes
	if req.TechnicianID != nil {
		booking.TechnicianID = req.TechnicianID
	}

	u.log.Infof("Booking status overridden: id=%s, %s -> %s, by=%s", bookingID, oldStatus, newStatus, actor.UserID)
	return converter.BookingToResponse(booking), nil
}
