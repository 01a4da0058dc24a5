package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeBookingRepo dispatches to per-test hooks; the db handle is unused
// because the hooks carry their own state.
type fakeBookingRepo struct {
	findByID                   func(id uuid.UUID) (*entity.Booking, error)
	findCompletedByIDAndClient func(id, clientID uuid.UUID) (*entity.Booking, error)
	cancelGuarded              func(id uuid.UUID, internalNotes string) (int64, error)
	completeGuarded            func(id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error)
	override                   func(id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error
}

func (f *fakeBookingRepo) Create(db *gorm.DB, booking *entity.Booking) error {
	return nil
}

func (f *fakeBookingRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	return f.findByID(id)
}

func (f *fakeBookingRepo) FindByClientID(db *gorm.DB, clientID uuid.UUID) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) FindByTechnicianID(db *gorm.DB, technicianID uuid.UUID) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) FindAll(db *gorm.DB, limit, offset int) ([]entity.Booking, int64, error) {
	return nil, 0, nil
}

func (f *fakeBookingRepo) FindCompletedByIDAndClient(db *gorm.DB, id, clientID uuid.UUID) (*entity.Booking, error) {
	return f.findCompletedByIDAndClient(id, clientID)
}

func (f *fakeBookingRepo) CancelGuarded(db *gorm.DB, id uuid.UUID, internalNotes string) (int64, error) {
	return f.cancelGuarded(id, internalNotes)
}

func (f *fakeBookingRepo) CompleteGuarded(db *gorm.DB, id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error) {
	return f.completeGuarded(id, completedAt, finalPrice)
}

func (f *fakeBookingRepo) Override(db *gorm.DB, id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error {
	return f.override(id, status, technicianID, internalNotes)
}

type fakePaymentRepo struct {
	created []*entity.Payment
}

func (f *fakePaymentRepo) Create(db *gorm.DB, payment *entity.Payment) error {
	f.created = append(f.created, payment)
	return nil
}

func (f *fakePaymentRepo) FindByBookingID(db *gorm.DB, bookingID uuid.UUID) (*entity.Payment, error) {
	return nil, nil
}

type fakeTechnicianRepo struct {
	incremented []uuid.UUID
	rating      decimal.Decimal
	reviewCount int
}

func (f *fakeTechnicianRepo) Create(db *gorm.DB, profile *entity.TechnicianProfile) error {
	return nil
}

func (f *fakeTechnicianRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.TechnicianProfile, error) {
	return nil, nil
}

func (f *fakeTechnicianRepo) FindAll(db *gorm.DB) ([]entity.TechnicianProfile, error) {
	return nil, nil
}

func (f *fakeTechnicianRepo) Update(db *gorm.DB, profile *entity.TechnicianProfile) error {
	return nil
}

func (f *fakeTechnicianRepo) UpdateRatingAggregates(db *gorm.DB, userID uuid.UUID, rating decimal.Decimal, reviewCount int) error {
	f.rating = rating
	f.reviewCount = reviewCount
	return nil
}

func (f *fakeTechnicianRepo) IncrementCompletedJobs(db *gorm.DB, userID uuid.UUID) error {
	f.incremented = append(f.incremented, userID)
	return nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

type bookingFixture struct {
	usecase     BookingUsecase
	mock        sqlmock.Sqlmock
	bookings    *fakeBookingRepo
	payments    *fakePaymentRepo
	technicians *fakeTechnicianRepo
	audit       *fakeAuditService
}

func newBookingFixture(t *testing.T, bookings *fakeBookingRepo) *bookingFixture {
	t.Helper()

	db, mock := newMockDB(t)
	payments := &fakePaymentRepo{}
	technicians := &fakeTechnicianRepo{}
	audit := &fakeAuditService{}

	uc := NewBookingUsecase(db, newTestLogger(), 24*time.Hour, bookings, payments, technicians, audit)

	return &bookingFixture{
		usecase:     uc,
		mock:        mock,
		bookings:    bookings,
		payments:    payments,
		technicians: technicians,
		audit:       audit,
	}
}

func pendingBooking(clientID uuid.UUID, technicianID *uuid.UUID, scheduledIn time.Duration) *entity.Booking {
	return &entity.Booking{
		ID:             uuid.New(),
		BookingNumber:  "BK-2026-0001",
		ClientID:       clientID,
		TechnicianID:   technicianID,
		ServiceID:      uuid.New(),
		Status:         entity.BookingStatusPending,
		ScheduledDate:  time.Now().Add(scheduledIn),
		EstimatedPrice: decimal.NewFromInt(150),
	}
}

func TestCancelBooking_ByOwner(t *testing.T) {
	clientID := uuid.New()
	booking := pendingBooking(clientID, nil, 72*time.Hour)

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		cancelGuarded: func(id uuid.UUID, internalNotes string) (int64, error) {
			assert.Equal(t, booking.ID, id)
			assert.Equal(t, "Found someone cheaper", internalNotes)
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	resp, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{Reason: "Found someone cheaper"})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
	assert.Equal(t, []string{entity.AuditActionBookingCancel}, f.audit.actions)
	assert.Empty(t, f.payments.created)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCancelBooking_DefaultReason(t *testing.T) {
	clientID := uuid.New()
	booking := pendingBooking(clientID, nil, 72*time.Hour)

	var gotNote string
	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		cancelGuarded: func(id uuid.UUID, internalNotes string) (int64, error) {
			gotNote = internalNotes
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Equal(t, defaultCancelNote, gotNote)
}

func TestCancelBooking_NotFound(t *testing.T) {
	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return nil, nil
		},
	}
	f := newBookingFixture(t, bookings)

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), uuid.New(), actor, &dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, f.audit.actions)
}

func TestCancelBooking_AccessDenied(t *testing.T) {
	booking := pendingBooking(uuid.New(), nil, 72*time.Hour)

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	f := newBookingFixture(t, bookings)

	// A different client, not the owner and not assigned.
	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingAccessDenied)
}

func TestCancelBooking_AssignedTechnicianAllowed(t *testing.T) {
	technicianID := uuid.New()
	booking := pendingBooking(uuid.New(), &technicianID, 72*time.Hour)
	booking.Status = entity.BookingStatusAssigned

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		cancelGuarded: func(id uuid.UUID, internalNotes string) (int64, error) {
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: technicianID, RoleID: entity.RoleIDTechnician}
	resp, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{Reason: "Client unreachable"})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
}

func TestCancelBooking_AlreadyTerminal(t *testing.T) {
	clientID := uuid.New()
	booking := pendingBooking(clientID, nil, 72*time.Hour)
	booking.Status = entity.BookingStatusCompleted

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	f := newBookingFixture(t, bookings)

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingNotCancellable)
}

func TestCancelBooking_WindowClosed(t *testing.T) {
	clientID := uuid.New()
	// Scheduled 2 hours out, well inside the 24 hour window.
	booking := pendingBooking(clientID, nil, 2*time.Hour)

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	f := newBookingFixture(t, bookings)

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	assert.Empty(t, f.audit.actions)
}

func TestCancelBooking_AdminBypassesWindow(t *testing.T) {
	booking := pendingBooking(uuid.New(), nil, 2*time.Hour)

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		cancelGuarded: func(id uuid.UUID, internalNotes string) (int64, error) {
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	resp, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{Reason: "Dispute resolution"})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCancelled), resp.Status)
}

func TestCancelBooking_LostRace(t *testing.T) {
	clientID := uuid.New()
	booking := pendingBooking(clientID, nil, 72*time.Hour)

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		cancelGuarded: func(id uuid.UUID, internalNotes string) (int64, error) {
			// A concurrent completion won between the read and the update.
			return 0, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.Cancel(context.Background(), booking.ID, actor, &dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingNotCancellable)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCompleteBooking_WithPayment(t *testing.T) {
	technicianID := uuid.New()
	booking := pendingBooking(uuid.New(), &technicianID, -time.Hour)
	booking.Status = entity.BookingStatusInProgress

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		completeGuarded: func(id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error) {
			assert.True(t, finalPrice.Equal(booking.EstimatedPrice))
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: technicianID, RoleID: entity.RoleIDTechnician}
	resp, err := f.usecase.Complete(context.Background(), booking.ID, actor, &dto.CompleteBookingRequest{PaymentReceived: true})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusCompleted), resp.Booking.Status)
	require.NotNil(t, resp.Booking.FinalPrice)
	assert.True(t, resp.Booking.FinalPrice.Equal(booking.EstimatedPrice))
	require.NotNil(t, resp.Payment)
	assert.Equal(t, string(entity.PaymentMethodCash), resp.Payment.Method)
	assert.Equal(t, string(entity.PaymentStatusPaid), resp.Payment.Status)
	assert.True(t, resp.Payment.Amount.Equal(booking.EstimatedPrice))

	require.Len(t, f.payments.created, 1)
	assert.Equal(t, []uuid.UUID{technicianID}, f.technicians.incremented)
	assert.Equal(t, []string{entity.AuditActionBookingComplete}, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCompleteBooking_WithoutPayment(t *testing.T) {
	technicianID := uuid.New()
	booking := pendingBooking(uuid.New(), &technicianID, -time.Hour)
	booking.Status = entity.BookingStatusInProgress

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		completeGuarded: func(id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error) {
			return 1, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: technicianID, RoleID: entity.RoleIDTechnician}
	resp, err := f.usecase.Complete(context.Background(), booking.ID, actor, &dto.CompleteBookingRequest{PaymentReceived: false})

	require.NoError(t, err)
	assert.Nil(t, resp.Payment)
	assert.Empty(t, f.payments.created)
	assert.Empty(t, f.technicians.incremented)
}

func TestCompleteBooking_OwnerCannotComplete(t *testing.T) {
	clientID := uuid.New()
	technicianID := uuid.New()
	booking := pendingBooking(clientID, &technicianID, -time.Hour)
	booking.Status = entity.BookingStatusInProgress

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	f := newBookingFixture(t, bookings)

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.Complete(context.Background(), booking.ID, actor, &dto.CompleteBookingRequest{})

	assert.ErrorIs(t, err, ErrBookingAccessDenied)
}

func TestCompleteBooking_LostRace(t *testing.T) {
	technicianID := uuid.New()
	booking := pendingBooking(uuid.New(), &technicianID, -time.Hour)
	booking.Status = entity.BookingStatusInProgress

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		completeGuarded: func(id uuid.UUID, completedAt time.Time, finalPrice decimal.Decimal) (int64, error) {
			return 0, nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	actor := entity.Identity{UserID: technicianID, RoleID: entity.RoleIDTechnician}
	_, err := f.usecase.Complete(context.Background(), booking.ID, actor, &dto.CompleteBookingRequest{PaymentReceived: true})

	assert.ErrorIs(t, err, ErrBookingNotCompletable)
	assert.Empty(t, f.payments.created)
	assert.Empty(t, f.technicians.incremented)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAdminUpdateStatus_InvalidStatus(t *testing.T) {
	f := newBookingFixture(t, &fakeBookingRepo{})

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	_, err := f.usecase.AdminUpdateStatus(context.Background(), uuid.New(), actor, &dto.AdminUpdateBookingStatusRequest{Status: "DONE"})

	assert.ErrorIs(t, err, ErrInvalidBookingStatus)
}

func TestAdminUpdateStatus_Refund(t *testing.T) {
	booking := pendingBooking(uuid.New(), nil, -48*time.Hour)
	booking.Status = entity.BookingStatusCompleted

	var gotStatus entity.BookingStatus
	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		override: func(id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error {
			gotStatus = status
			return nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	resp, err := f.usecase.AdminUpdateStatus(context.Background(), booking.ID, actor, &dto.AdminUpdateBookingStatusRequest{
		Status: string(entity.BookingStatusRefunded),
		Notes:  "Chargeback settled",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusRefunded, gotStatus)
	assert.Equal(t, string(entity.BookingStatusRefunded), resp.Status)
	assert.Equal(t, []string{entity.AuditActionBookingStatusOverride}, f.audit.actions)
}

func TestAdminUpdateStatus_UnknownTechnician(t *testing.T) {
	booking := pendingBooking(uuid.New(), nil, 72*time.Hour)
	ghost := uuid.New()

	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		override: func(id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "fk_bookings_technician"}
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	_, err := f.usecase.AdminUpdateStatus(context.Background(), booking.ID, actor, &dto.AdminUpdateBookingStatusRequest{
		Status:       string(entity.BookingStatusAssigned),
		TechnicianID: &ghost,
	})

	assert.ErrorIs(t, err, ErrTechnicianNotFound)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAdminUpdateStatus_AssignsTechnician(t *testing.T) {
	booking := pendingBooking(uuid.New(), nil, 72*time.Hour)
	newTechnician := uuid.New()

	var gotTechnician *uuid.UUID
	bookings := &fakeBookingRepo{
		findByID: func(id uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
		override: func(id uuid.UUID, status entity.BookingStatus, technicianID *uuid.UUID, internalNotes string) error {
			gotTechnician = technicianID
			return nil
		},
	}
	f := newBookingFixture(t, bookings)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	resp, err := f.usecase.AdminUpdateStatus(context.Background(), booking.ID, actor, &dto.AdminUpdateBookingStatusRequest{
		Status:       string(entity.BookingStatusAssigned),
		TechnicianID: &newTechnician,
	})

	require.NoError(t, err)
	require.NotNil(t, gotTechnician)
	assert.Equal(t, newTechnician, *gotTechnician)
	assert.Equal(t, string(entity.BookingStatusAssigned), resp.Status)
}
