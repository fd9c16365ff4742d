package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/service"
)

type ReviewsHandler struct {
	reviewService *service.ReviewService
	matchService  *service.MatchService
	authService   *service.AuthService
}

func NewReviewsHandler(reviewService *service.ReviewService, matchService *service.MatchService, authService *service.AuthService) *ReviewsHandler {
	return &ReviewsHandler{
		reviewService: reviewService,
		matchService:  matchService,
		authService:   authService,
	}
}

type ReviewResponse struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	TargetID  string `json:"targetId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		AuthorID:  review.AuthorID.String(),
		TargetID:  review.TargetID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReviewResponses(reviews []*domain.Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp[i] = toReviewResponse(review)
	}
	return resp
}

type CreateReviewRequest struct {
	TargetID string `json:"targetId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// Create only lets a user review someone they share an accepted match
// with, and never themselves.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target id")
		return
	}
	if targetID == userID {
		writeError(w, http.StatusBadRequest, "You cannot review yourself")
		return
	}

	if _, err := h.authService.GetUserByID(r.Context(), targetID); err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	matched, err := h.matchService.HasAccepted(r.Context(), userID, targetID)
	if err != nil {
		writeInternalError(w, "reviews.Create", err)
		return
	}
	if !matched {
		writeError(w, http.StatusForbidden, "You can only review users you have matched with")
		return
	}

	review, err := h.reviewService.Create(r.Context(), userID, targetID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			writeError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		case errors.Is(err, domain.ErrAlreadyReviewed):
			writeError(w, http.StatusBadRequest, "You have already reviewed this user")
		default:
			writeInternalError(w, "reviews.Create", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	targetID, err := uuid.Parse(r.URL.Query().Get("targetId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid target id")
		return
	}

	reviews, err := h.reviewService.ListForTarget(r.Context(), targetID)
	if err != nil {
		writeInternalError(w, "reviews.List", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reviews":       toReviewResponses(reviews),
		"averageRating": service.AverageRating(reviews),
	})
}
