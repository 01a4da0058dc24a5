package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/azzbr/handyman-backend/internal/delivery/dto"
	"github.com/azzbr/handyman-backend/internal/delivery/http/middleware"
	"github.com/azzbr/handyman-backend/internal/usecase"
	"github.com/azzbr/handyman-backend/pkg/response"
	"github.com/azzbr/handyman-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

// SubmitReview is the authenticated customer submission path; the review is
// published immediately.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid booking ID", nil)
		return
	}

	var req dto.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.SubmitReview(r.Context(), bookingID, actor, &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Review submitted successfully", review)
}

// SubmitPublicReview is the anonymous submission path; the review starts
// unpublished pending admin moderation.
func (h *ReviewHandler) SubmitPublicReview(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitPublicReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.SubmitPublicReview(r.Context(), &req)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Review submitted and awaiting moderation", review)
}

func (h *ReviewHandler) writeSubmitError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidRating:
		response.Error(w, http.StatusBadRequest, "Overall rating must be between 1 and 5", nil)
	case usecase.ErrReviewableBookingNotFound:
		response.NotFound(w, "No completed booking found for this client")
	case usecase.ErrReviewAlreadyExists:
		response.Conflict(w, "A review already exists for this booking")
	default:
		response.InternalServerError(w, "Failed to submit review")
	}
}

func (h *ReviewHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ModerateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.ModerateReview(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidModerationAction:
			response.Error(w, http.StatusBadRequest, "Moderation action must be approve or deny", nil)
		case usecase.ErrReviewNotFound:
			response.NotFound(w, "Review not found")
		default:
			response.InternalServerError(w, "Failed to moderate review")
		}
		return
	}

	response.Success(w, http.StatusOK, "Review moderated successfully", review)
}

func (h *ReviewHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	var serviceID *uuid.UUID
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
			return
		}
		serviceID = &id
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reviews, err := h.reviewUsecase.ListPublished(r.Context(), serviceID, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}
