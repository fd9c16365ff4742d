package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/service"
)

type AvailabilityHandler struct {
	availabilityService *service.AvailabilityService
}

func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

type CreateSlotRequest struct {
	Date      string `json:"date"` // "2006-01-02"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type SlotResponse struct {
	ID        string `json:"id"`
	MentorID  string `json:"mentorId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

func toSlotResponse(slot *domain.MentorAvailability) SlotResponse {
	return SlotResponse{
		ID:        slot.ID.String(),
		MentorID:  slot.MentorID.String(),
		Date:      time.Time(slot.Date).Format("2006-01-02"),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		IsBooked:  slot.IsBooked,
	}
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slot, err := h.availabilityService.Create(r.Context(), service.CreateSlotInput{
		MentorID:  userID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSlotTime), errors.Is(err, domain.ErrSlotTooShort):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, "availability.Create", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toSlotResponse(slot))
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	mentorID := userID
	if raw := r.URL.Query().Get("mentorId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid mentor id")
			return
		}
		mentorID = parsed
	}

	// Only the slot owner sees their booked slots.
	includeBooked := r.URL.Query().Get("includeBooked") == "true" && mentorID == userID

	slots, err := h.availabilityService.ListForMentor(r.Context(), mentorID, includeBooked)
	if err != nil {
		writeInternalError(w, "availability.List", err)
		return
	}

	resp := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		resp[i] = toSlotResponse(slot)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid slot id")
		return
	}

	if err := h.availabilityService.Delete(r.Context(), slotID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, "Slot not found")
		case errors.Is(err, domain.ErrNotSlotOwner):
			writeError(w, http.StatusForbidden, "Slot does not belong to you")
		case errors.Is(err, domain.ErrSlotBooked):
			writeError(w, http.StatusBadRequest, "Slot is already booked")
		default:
			writeInternalError(w, "availability.Delete", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
