package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
	"github.com/azzbr/handyman-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeReviewRepo struct {
	created        []*entity.Review
	createErr      error
	byID           *entity.Review
	overallRatings []int
	published      []entity.Review
	aggregate      *repository.ServiceReviewAggregate

	moderatedID    uuid.UUID
	moderatedState bool
	moderatedNotes string

	publishedLimit int
}

func (f *fakeReviewRepo) Create(db *gorm.DB, review *entity.Review) error {
	if f.createErr != nil {
		return f.createErr
	}
	review.ID = uuid.New()
	f.created = append(f.created, review)
	return nil
}

func (f *fakeReviewRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	return f.byID, nil
}

func (f *fakeReviewRepo) FindPublished(db *gorm.DB, serviceID *uuid.UUID, limit int) ([]entity.Review, error) {
	f.publishedLimit = limit
	return f.published, nil
}

func (f *fakeReviewRepo) OverallRatingsByTechnician(db *gorm.DB, technicianID uuid.UUID) ([]int, error) {
	return f.overallRatings, nil
}

func (f *fakeReviewRepo) AggregateByService(db *gorm.DB, serviceID uuid.UUID) (*repository.ServiceReviewAggregate, error) {
	return f.aggregate, nil
}

func (f *fakeReviewRepo) UpdateModeration(db *gorm.DB, id uuid.UUID, published bool, moderationNotes string) error {
	f.moderatedID = id
	f.moderatedState = published
	f.moderatedNotes = moderationNotes
	return nil
}

type fakeUserRepo struct {
	byEmail *entity.User
}

func (f *fakeUserRepo) Create(db *gorm.DB, user *entity.User) error {
	return nil
}

func (f *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return f.byEmail, nil
}

func (f *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(db *gorm.DB, user *entity.User) error {
	return nil
}

type reviewFixture struct {
	usecase     ReviewUsecase
	mock        sqlmock.Sqlmock
	reviews     *fakeReviewRepo
	bookings    *fakeBookingRepo
	technicians *fakeTechnicianRepo
	users       *fakeUserRepo
	audit       *fakeAuditService
}

func newReviewFixture(t *testing.T, reviews *fakeReviewRepo, bookings *fakeBookingRepo, users *fakeUserRepo) *reviewFixture {
	t.Helper()

	db, mock := newMockDB(t)
	technicians := &fakeTechnicianRepo{}
	audit := &fakeAuditService{}

	uc := NewReviewUsecase(db, newTestLogger(), reviews, bookings, technicians, users, audit)

	return &reviewFixture{
		usecase:     uc,
		mock:        mock,
		reviews:     reviews,
		bookings:    bookings,
		technicians: technicians,
		users:       users,
		audit:       audit,
	}
}

func completedBooking(clientID uuid.UUID, technicianID *uuid.UUID) *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		ID:             uuid.New(),
		BookingNumber:  "BK-2026-0042",
		ClientID:       clientID,
		TechnicianID:   technicianID,
		ServiceID:      uuid.New(),
		Status:         entity.BookingStatusCompleted,
		ScheduledDate:  now.Add(-48 * time.Hour),
		EstimatedPrice: decimal.NewFromInt(200),
		CompletedAt:    &now,
	}
}

func TestSubmitReview_PublishesAndRecomputesRating(t *testing.T) {
	clientID := uuid.New()
	technicianID := uuid.New()
	booking := completedBooking(clientID, &technicianID)

	bookings := &fakeBookingRepo{
		findCompletedByIDAndClient: func(id, cID uuid.UUID) (*entity.Booking, error) {
			assert.Equal(t, booking.ID, id)
			assert.Equal(t, clientID, cID)
			return booking, nil
		},
	}
	// Two prior ratings plus the new one were already persisted when the
	// recompute reads them back.
	reviews := &fakeReviewRepo{overallRatings: []int{5, 4, 5}}
	f := newReviewFixture(t, reviews, bookings, &fakeUserRepo{})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	resp, err := f.usecase.SubmitReview(context.Background(), booking.ID, actor, &dto.SubmitReviewRequest{
		OverallRating: 5,
		Comment:       "Fixed the leak in under an hour",
	})

	require.NoError(t, err)
	assert.True(t, resp.Published)
	assert.Equal(t, 5, resp.OverallRating)

	// 14 / 3 = 4.666..., rounded to one decimal place.
	assert.True(t, f.technicians.rating.Equal(decimal.RequireFromString("4.7")), "got %s", f.technicians.rating)
	assert.Equal(t, 3, f.technicians.reviewCount)
	assert.Equal(t, []string{entity.AuditActionReviewSubmit}, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitReview_RoundsMeanHalfUp(t *testing.T) {
	clientID := uuid.New()
	technicianID := uuid.New()
	booking := completedBooking(clientID, &technicianID)

	bookings := &fakeBookingRepo{
		findCompletedByIDAndClient: func(id, cID uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	// Three prior 4s plus the new 5: mean 4.25 sits exactly on the tenths
	// boundary and must come out as 4.3, not 4.2.
	reviews := &fakeReviewRepo{overallRatings: []int{4, 4, 4, 5}}
	f := newReviewFixture(t, reviews, bookings, &fakeUserRepo{})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.SubmitReview(context.Background(), booking.ID, actor, &dto.SubmitReviewRequest{
		OverallRating: 5,
	})

	require.NoError(t, err)
	assert.True(t, f.technicians.rating.Equal(decimal.RequireFromString("4.3")), "got %s", f.technicians.rating)
	assert.Equal(t, 4, f.technicians.reviewCount)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitReview_RatingOutOfRange(t *testing.T) {
	f := newReviewFixture(t, &fakeReviewRepo{}, &fakeBookingRepo{}, &fakeUserRepo{})
	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDClient}

	for _, rating := range []int{0, 6, -1} {
		_, err := f.usecase.SubmitReview(context.Background(), uuid.New(), actor, &dto.SubmitReviewRequest{OverallRating: rating})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", rating)
	}
}

func TestSubmitReview_BookingNotCompleted(t *testing.T) {
	bookings := &fakeBookingRepo{
		findCompletedByIDAndClient: func(id, clientID uuid.UUID) (*entity.Booking, error) {
			return nil, nil
		},
	}
	f := newReviewFixture(t, &fakeReviewRepo{}, bookings, &fakeUserRepo{})

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDClient}
	_, err := f.usecase.SubmitReview(context.Background(), uuid.New(), actor, &dto.SubmitReviewRequest{OverallRating: 4})

	assert.ErrorIs(t, err, ErrReviewableBookingNotFound)
	assert.Empty(t, f.audit.actions)
}

func TestSubmitReview_Duplicate(t *testing.T) {
	clientID := uuid.New()
	booking := completedBooking(clientID, nil)

	bookings := &fakeBookingRepo{
		findCompletedByIDAndClient: func(id, cID uuid.UUID) (*entity.Booking, error) {
			return booking, nil
		},
	}
	reviews := &fakeReviewRepo{
		createErr: &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_booking_id"},
	}
	f := newReviewFixture(t, reviews, bookings, &fakeUserRepo{})
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	actor := entity.Identity{UserID: clientID, RoleID: entity.RoleIDClient}
	_, err := f.usecase.SubmitReview(context.Background(), booking.ID, actor, &dto.SubmitReviewRequest{OverallRating: 5})

	assert.ErrorIs(t, err, ErrReviewAlreadyExists)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmitPublicReview_HeldForModeration(t *testing.T) {
	clientID := uuid.New()
	booking := completedBooking(clientID, nil)

	bookings := &fakeBookingRepo{
		findCompletedByIDAndClient: func(id, cID uuid.UUID) (*entity.Booking, error) {
			assert.Equal(t, clientID, cID)
			return booking, nil
		},
	}
	reviews := &fakeReviewRepo{}
	users := &fakeUserRepo{byEmail: &entity.User{ID: clientID, Email: "client@example.com"}}
	f := newReviewFixture(t, reviews, bookings, users)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.SubmitPublicReview(context.Background(), &dto.SubmitPublicReviewRequest{
		BookingID: booking.ID,
		Email:     "client@example.com",
		Photos:    []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		SubmitReviewRequest: dto.SubmitReviewRequest{
			OverallRating: 4,
			Comment:       "Tidy work, arrived a little late",
		},
	})

	require.NoError(t, err)
	assert.False(t, resp.Published)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, resp.Photos)

	require.Len(t, reviews.created, 1)
	assert.False(t, reviews.created[0].Published)
	assert.Equal(t, clientID, reviews.created[0].ClientID)
}

func TestSubmitPublicReview_UnknownEmail(t *testing.T) {
	f := newReviewFixture(t, &fakeReviewRepo{}, &fakeBookingRepo{}, &fakeUserRepo{byEmail: nil})

	_, err := f.usecase.SubmitPublicReview(context.Background(), &dto.SubmitPublicReviewRequest{
		BookingID:           uuid.New(),
		Email:               "nobody@example.com",
		SubmitReviewRequest: dto.SubmitReviewRequest{OverallRating: 5},
	})

	assert.ErrorIs(t, err, ErrReviewableBookingNotFound)
}

func TestModerateReview_Approve(t *testing.T) {
	reviewID := uuid.New()
	reviews := &fakeReviewRepo{
		byID: &entity.Review{ID: reviewID, BookingID: uuid.New(), OverallRating: 4, Published: false},
	}
	f := newReviewFixture(t, reviews, &fakeBookingRepo{}, &fakeUserRepo{})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	resp, err := f.usecase.ModerateReview(context.Background(), actor, &dto.ModerateReviewRequest{
		ReviewID: reviewID,
		Action:   string(entity.ModerationActionApprove),
	})

	require.NoError(t, err)
	assert.True(t, resp.Published)
	assert.Equal(t, entity.ModerationNoteApproved, resp.ModerationNotes)
	assert.Equal(t, reviewID, reviews.moderatedID)
	assert.True(t, reviews.moderatedState)
	assert.Equal(t, []string{entity.AuditActionReviewModerate}, f.audit.actions)
}

func TestModerateReview_DenyWithNotes(t *testing.T) {
	reviewID := uuid.New()
	reviews := &fakeReviewRepo{
		byID: &entity.Review{ID: reviewID, BookingID: uuid.New(), OverallRating: 1, Published: true},
	}
	f := newReviewFixture(t, reviews, &fakeBookingRepo{}, &fakeUserRepo{})
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	resp, err := f.usecase.ModerateReview(context.Background(), actor, &dto.ModerateReviewRequest{
		ReviewID: reviewID,
		Action:   string(entity.ModerationActionDeny),
		Notes:    "Contains personal contact details",
	})

	require.NoError(t, err)
	assert.False(t, resp.Published)
	assert.Equal(t, "Contains personal contact details", resp.ModerationNotes)
	assert.False(t, reviews.moderatedState)
}

func TestModerateReview_InvalidAction(t *testing.T) {
	f := newReviewFixture(t, &fakeReviewRepo{}, &fakeBookingRepo{}, &fakeUserRepo{})

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	_, err := f.usecase.ModerateReview(context.Background(), actor, &dto.ModerateReviewRequest{
		ReviewID: uuid.New(),
		Action:   "publish",
	})

	assert.ErrorIs(t, err, ErrInvalidModerationAction)
}

func TestModerateReview_NotFound(t *testing.T) {
	f := newReviewFixture(t, &fakeReviewRepo{byID: nil}, &fakeBookingRepo{}, &fakeUserRepo{})

	actor := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	_, err := f.usecase.ModerateReview(context.Background(), actor, &dto.ModerateReviewRequest{
		ReviewID: uuid.New(),
		Action:   string(entity.ModerationActionApprove),
	})

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestListPublished_ClampsLimit(t *testing.T) {
	reviews := &fakeReviewRepo{}
	f := newReviewFixture(t, reviews, &fakeBookingRepo{}, &fakeUserRepo{})

	_, err := f.usecase.ListPublished(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, reviews.publishedLimit)

	_, err = f.usecase.ListPublished(context.Background(), nil, 500)
	require.NoError(t, err)
	assert.Equal(t, maxPublishedReviews, reviews.publishedLimit)
}

func TestListPublished_WithServiceAggregate(t *testing.T) {
	serviceID := uuid.New()
	reviews := &fakeReviewRepo{
		published: []entity.Review{
			{ID: uuid.New(), BookingID: uuid.New(), OverallRating: 5, Published: true},
		},
		aggregate: &repository.ServiceReviewAggregate{AvgOverall: 4.5, Count: 12},
	}
	f := newReviewFixture(t, reviews, &fakeBookingRepo{}, &fakeUserRepo{})

	resp, err := f.usecase.ListPublished(context.Background(), &serviceID, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, resp.Aggregate)
	assert.Equal(t, 4.5, resp.Aggregate.AvgOverall)
	assert.Equal(t, int64(12), resp.Aggregate.Count)
}
