package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/azzbr/handyman-backend/internal/converter"
	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/domain/entity"
	"github.com/azzbr/handyman-backend/internal/domain/repository"
	"github.com/azzbr/handyman-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating             = errors.New("overall rating must be between 1 and 5")
	ErrReviewableBookingNotFound = errors.New("no completed booking found for this client")
	ErrReviewAlreadyExists       = errors.New("a review already exists for this booking")
	ErrReviewNotFound            = errors.New("review not found")
	ErrInvalidModerationAction   = errors.New("moderation action must be approve or deny")
)

const maxPublishedReviews = 50

type ReviewUsecase interface {
	SubmitReview(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	SubmitPublicReview(ctx context.Context, req *dto.SubmitPublicReviewRequest) (*dto.ReviewResponse, error)
	ModerateReview(ctx context.Context, actor entity.Identity, req *dto.ModerateReviewRequest) (*dto.ReviewResponse, error)
	ListPublished(ctx context.Context, serviceID *uuid.UUID, limit int) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	reviewRepo     repository.ReviewRepository
	bookingRepo    repository.BookingRepository
	technicianRepo repository.TechnicianProfileRepository
	userRepo       repository.UserRepository
	auditService   service.AuditService
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	technicianRepo repository.TechnicianProfileRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) ReviewUsecase {
	return &reviewUsecase{
		db:             db,
		log:            log,
		reviewRepo:     reviewRepo,
		bookingRepo:    bookingRepo,
		technicianRepo: technicianRepo,
		userRepo:       userRepo,
		auditService:   auditService,
	}
}

// SubmitReview is the authenticated customer path: the reviewer already
// proved ownership of the account, so the review publishes immediately.
func (u *reviewUsecase) SubmitReview(ctx context.Context, bookingID uuid.UUID, actor entity.Identity, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	return u.createReview(ctx, bookingID, actor.UserID, req, true, "")
}

// SubmitPublicReview is the anonymous path: the caller is resolved by the
// booking's client email and the review starts unpublished pending admin
// moderation.
func (u *reviewUsecase) SubmitPublicReview(ctx context.Context, req *dto.SubmitPublicReviewRequest) (*dto.ReviewResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrReviewableBookingNotFound
	}

	photos := ""
	if len(req.Photos) > 0 {
		raw, err := json.Marshal(req.Photos)
		if err != nil {
			return nil, err
		}
		photos = string(raw)
	}

	return u.createReview(ctx, req.BookingID, user.ID, &req.SubmitReviewRequest, false, photos)
}

// createReview is the shared creation rule behind both submission paths.
// Duplicate submissions are resolved by the unique constraint on booking_id,
// not by a pre-read, so concurrent submitters race safely.
func (u *reviewUsecase) createReview(ctx context.Context, bookingID, clientID uuid.UUID, req *dto.SubmitReviewRequest, published bool, photos string) (*dto.ReviewResponse, error) {
	if req.OverallRating < 1 || req.OverallRating > 5 {
		return nil, ErrInvalidRating
	}

	booking, err := u.bookingRepo.FindCompletedByIDAndClient(u.db.WithContext(ctx), bookingID, clientID)
	if err != nil {
		u.log.Warnf("Failed to find completed booking %s for client %s: %+v", bookingID, clientID, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrReviewableBookingNotFound
	}

	review := &entity.Review{
		BookingID:             bookingID,
		ClientID:              clientID,
		OverallRating:         req.OverallRating,
		QualityRating:         req.QualityRating,
		PunctualityRating:     req.PunctualityRating,
		ProfessionalismRating: req.ProfessionalismRating,
		ValueRating:           req.ValueRating,
		Comment:               req.Comment,
		Positives:             req.Positives,
		Improvements:          req.Improvements,
		Photos:                photos,
		Published:             published,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.reviewRepo.Create(tx, review); err != nil {
			if isDuplicateKeyError(err, "booking") {
				return ErrReviewAlreadyExists
			}
			return err
		}

		// The rating aggregate and the review row move together; a failed
		// recompute rolls the review back rather than leaving it stale.
		if booking.TechnicianID != nil {
			if err := u.recomputeTechnicianRating(tx, *booking.TechnicianID); err != nil {
				return err
			}
		}

		return u.auditService.LogAction(tx, &clientID, entity.AuditActionReviewSubmit,
			"review", review.ID.String(), nil, review.OverallRating)
	})
	if err != nil {
		if errors.Is(err, ErrReviewAlreadyExists) {
			return nil, err
		}
		u.log.Errorf("Failed to create review for booking %s: %+v", bookingID, err)
		return nil, err
	}

	u.log.Infof("Review submitted: id=%s, booking=%s, rating=%d, published=%t", review.ID, bookingID, req.OverallRating, published)
	return converter.ReviewToResponse(review), nil
}

// recomputeTechnicianRating reads every overall rating for the technician
// fresh and overwrites the aggregate, so repeated runs always converge on
// the same value.
func (u *reviewUsecase) recomputeTechnicianRating(tx *gorm.DB, technicianID uuid.UUID) error {
	ratings, err := u.reviewRepo.OverallRatingsByTechnician(tx, technicianID)
	if err != nil {
		return err
	}
	if len(ratings) == 0 {
		return u.technicianRepo.UpdateRatingAggregates(tx, technicianID, decimal.Zero, 0)
	}

	sum := int64(0)
	for _, r := range ratings {
		sum += int64(r)
	}
	mean := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)

	return u.technicianRepo.UpdateRatingAggregates(tx, technicianID, mean, len(ratings))
}

// ModerateReview applies an admin approve/deny decision. Re-applying the
// same action is a no-op status-wise but still overwrites the notes.
func (u *reviewUsecase) ModerateReview(ctx context.Context, actor entity.Identity, req *dto.ModerateReviewRequest) (*dto.ReviewResponse, error) {
	if !entity.IsValidModerationAction(req.Action) {
		return nil, ErrInvalidModerationAction
	}

	review, err := u.reviewRepo.FindByID(u.db.WithContext(ctx), req.ReviewID)
	if err != nil {
		u.log.Warnf("Failed to find review %s: %+v", req.ReviewID, err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	published := req.Action == string(entity.ModerationActionApprove)
	notes := req.Notes
	if notes == "" {
		if published {
			notes = entity.ModerationNoteApproved
		} else {
			notes = entity.ModerationNoteRejected
		}
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.reviewRepo.UpdateModeration(tx, req.ReviewID, published, notes); err != nil {
			return err
		}
		return u.auditService.LogAction(tx, &actor.UserID, entity.AuditActionReviewModerate,
			"review", req.ReviewID.String(), review.Published, published)
	})
	if err != nil {
		u.log.Warnf("Failed to moderate review %s: %+v", req.ReviewID, err)
		return nil, err
	}

	review.Published = published
	review.ModerationNotes = notes

	u.log.Infof("Review moderated: id=%s, action=%s, by=%s", req.ReviewID, req.Action, actor.UserID)
	return converter.ReviewToResponse(review), nil
}

// ListPublished returns published reviews newest first. When scoped to one
// service the averaged sub-ratings ride along.
func (u *reviewUsecase) ListPublished(ctx context.Context, serviceID *uuid.UUID, limit int) (*dto.ReviewListResponse, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > maxPublishedReviews {
		limit = maxPublishedReviews
	}

	reviews, err := u.reviewRepo.FindPublished(u.db.WithContext(ctx), serviceID, limit)
	if err != nil {
		u.log.Warnf("Failed to list published reviews: %+v", err)
		return nil, err
	}

	response := &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}

	if serviceID != nil {
		agg, err := u.reviewRepo.AggregateByService(u.db.WithContext(ctx), *serviceID)
		if err != nil {
			u.log.Warnf("Failed to aggregate reviews for service %s: %+v", *serviceID, err)
			return nil, err
		}
		response.Aggregate = agg
	}

	return response, nil
}
