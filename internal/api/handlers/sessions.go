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

type SessionsHandler struct {
	bookingService *service.BookingService
}

func NewSessionsHandler(bookingService *service.BookingService) *SessionsHandler {
	return &SessionsHandler{bookingService: bookingService}
}

type SessionResponse struct {
	ID             string  `json:"id"`
	HostID         string  `json:"hostId"`
	GuestID        string  `json:"guestId"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	Status         string  `json:"status"`
	AvailabilityID *string `json:"availabilityId,omitempty"`
}

func toSessionResponse(session *domain.Session) SessionResponse {
	resp := SessionResponse{
		ID:          session.ID.String(),
		HostID:      session.HostID.String(),
		GuestID:     session.GuestID.String(),
		Title:       session.Title,
		Description: session.Description,
		StartAt:     session.StartAt.UTC().Format(time.RFC3339),
		EndAt:       session.EndAt.UTC().Format(time.RFC3339),
		Status:      string(session.Status),
	}
	if session.AvailabilityID != nil {
		id := session.AvailabilityID.String()
		resp.AvailabilityID = &id
	}
	return resp
}

type CreateSessionRequest struct {
	GuestID     string `json:"guestId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartAt     string `json:"startAt"`
	EndAt       string `json:"endAt"`
}

// Create makes a direct session agreed outside the slot system. The
// authenticated user is the host.
func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.GuestID == "" || req.Title == "" || req.StartAt == "" || req.EndAt == "" {
		writeError(w, http.StatusBadRequest, "guestId, title, startAt and endAt are required")
		return
	}

	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid guest id")
		return
	}
	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid startAt, expected RFC3339")
		return
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid endAt, expected RFC3339")
		return
	}

	session, err := h.bookingService.CreateDirect(r.Context(), service.CreateDirectInput{
		HostID:      userID,
		GuestID:     guestID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     startAt,
		EndAt:       endAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) {
			writeError(w, http.StatusBadRequest, "endAt must be after startAt")
			return
		}
		writeInternalError(w, "sessions.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

type CreateSessionRequestRequest struct {
	MentorID        string `json:"mentorId"`
	AvailabilityID  string `json:"availabilityId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
}

// CreateRequest books a pending session against a mentor's published
// slot. The authenticated user is the guest.
func (h *SessionsHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req CreateSessionRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.MentorID == "" || req.AvailabilityID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "mentorId, availabilityId and title are required")
		return
	}

	mentorID, err := uuid.Parse(req.MentorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mentor id")
		return
	}
	availabilityID, err := uuid.Parse(req.AvailabilityID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid availability id")
		return
	}

	session, err := h.bookingService.CreateRequest(r.Context(), service.CreateRequestInput{
		MentorID:        mentorID,
		GuestID:         userID,
		AvailabilityID:  availabilityID,
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlotNotFound):
			writeError(w, http.StatusNotFound, "Slot not found")
		case errors.Is(err, domain.ErrNotSlotOwner),
			errors.Is(err, domain.ErrSlotBooked),
			errors.Is(err, domain.ErrInvalidDuration),
			errors.Is(err, domain.ErrOutsideSlot):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(w, "sessions.CreateRequest", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	upcomingOnly := r.URL.Query().Get("type") == "upcoming"

	sessions, err := h.bookingService.ListForUser(r.Context(), userID, upcomingOnly)
	if err != nil {
		writeInternalError(w, "sessions.List", err)
		return
	}

	resp := make([]SessionResponse, len(sessions))
	for i, session := range sessions {
		resp[i] = toSessionResponse(session)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionsHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.SessionStatusScheduled, chi.URLParam(r, "id"))
}

func (h *SessionsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.SessionStatusRejected, chi.URLParam(r, "id"))
}

// Cancel handles DELETE /sessions?id=.
func (h *SessionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, domain.SessionStatusCancelled, r.URL.Query().Get("id"))
}

type PatchSessionRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Patch maps a requested status onto the corresponding transition.
// pending is not a reachable target, so it rejects along with unknown
// values.
func (h *SessionsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := domain.SessionStatus(req.Status)
	if !status.Valid() || status == domain.SessionStatusPending {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	h.transition(w, r, status, req.ID)
}

func (h *SessionsHandler) transition(w http.ResponseWriter, r *http.Request, target domain.SessionStatus, rawID string) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	sessionID, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid session id")
		return
	}

	var session *domain.Session
	switch target {
	case domain.SessionStatusScheduled:
		session, err = h.bookingService.Accept(r.Context(), sessionID, userID)
	case domain.SessionStatusRejected:
		session, err = h.bookingService.Reject(r.Context(), sessionID, userID)
	case domain.SessionStatusCancelled:
		session, err = h.bookingService.Cancel(r.Context(), sessionID, userID)
	case domain.SessionStatusCompleted:
		session, err = h.bookingService.Complete(r.Context(), sessionID, userID)
	default:
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, domain.ErrNotSessionHost), errors.Is(err, domain.ErrNotSessionParty):
			writeError(w, http.StatusForbidden, "You are not allowed to modify this session")
		case errors.Is(err, domain.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "Invalid session status transition")
		default:
			writeInternalError(w, "sessions.transition", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

func (h *SessionsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	stats, err := h.bookingService.Stats(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "sessions.Stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
