package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	reviewService  *service.ReviewService
}

func NewProfileHandler(profileService *service.ProfileService, reviewService *service.ReviewService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		reviewService:  reviewService,
	}
}

type ProfileResponse struct {
	User         UserResponse          `json:"user"`
	Skills       []*domain.Skill       `json:"skills"`
	WantedSkills []*domain.WantedSkill `json:"wantedSkills"`
	Languages    []*domain.Language    `json:"languages"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, "profile.GetProfile", err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		User:         toUserResponse(profile.User),
		Skills:       profile.Skills,
		WantedSkills: profile.WantedSkills,
		Languages:    profile.Languages,
	})
}

type UpdateProfileRequest struct {
	Name      *string  `json:"name"`
	Bio       *string  `json:"bio"`
	City      *string  `json:"city"`
	Title     *string  `json:"title"`
	Interests []string `json:"interests"`
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
		Name:      req.Name,
		Bio:       req.Bio,
		City:      req.City,
		Title:     req.Title,
		Interests: req.Interests,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternalError(w, "profile.UpdateProfile", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

type MentorResponse struct {
	User          UserResponse     `json:"user"`
	Skills        []*domain.Skill  `json:"skills"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
}

// GetMentor is the one public profile route: anyone can look at a mentor
// before registering.
func (h *ProfileHandler) GetMentor(w http.ResponseWriter, r *http.Request) {
	mentorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mentor id")
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), mentorID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "Mentor not found")
			return
		}
		writeInternalError(w, "profile.GetMentor", err)
		return
	}

	reviews, err := h.reviewService.ListForTarget(r.Context(), mentorID)
	if err != nil {
		writeInternalError(w, "profile.GetMentor", err)
		return
	}

	writeJSON(w, http.StatusOK, MentorResponse{
		User:          toUserResponse(profile.User),
		Skills:        profile.Skills,
		Reviews:       toReviewResponses(reviews),
		AverageRating: service.AverageRating(reviews),
	})
}
