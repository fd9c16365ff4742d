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

type MatchesHandler struct {
	matchService *service.MatchService
}

func NewMatchesHandler(matchService *service.MatchService) *MatchesHandler {
	return &MatchesHandler{matchService: matchService}
}

type MatchResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Skill      string `json:"skill"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

func toMatchResponse(match *domain.Match) MatchResponse {
	return MatchResponse{
		ID:         match.ID.String(),
		SenderID:   match.SenderID.String(),
		ReceiverID: match.ReceiverID.String(),
		Skill:      match.Skill,
		Status:     string(match.Status),
		CreatedAt:  match.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type SendMatchRequest struct {
	ReceiverID string `json:"receiverId"`
	Skill      string `json:"skill"`
}

func (h *MatchesHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req SendMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid receiver id")
		return
	}
	if receiverID == userID {
		writeError(w, http.StatusBadRequest, "You cannot match with yourself")
		return
	}

	match, err := h.matchService.SendRequest(r.Context(), userID, receiverID, req.Skill)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrMatchExists):
			writeError(w, http.StatusConflict, "Match request already exists")
		default:
			writeInternalError(w, "matches.Send", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toMatchResponse(match))
}

type RespondMatchRequest struct {
	Accept bool `json:"accept"`
}

func (h *MatchesHandler) Respond(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	matchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid match id")
		return
	}

	var req RespondMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	match, err := h.matchService.Respond(r.Context(), matchID, userID, req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, domain.ErrNotMatchReceiver):
			writeError(w, http.StatusForbidden, "Only the receiver can respond to this match")
		case errors.Is(err, domain.ErrMatchNotPending):
			writeError(w, http.StatusBadRequest, "Match is no longer pending")
		default:
			writeInternalError(w, "matches.Respond", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toMatchResponse(match))
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	matches, err := h.matchService.ListForUser(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "matches.List", err)
		return
	}

	resp := make([]MatchResponse, len(matches))
	for i, match := range matches {
		resp[i] = toMatchResponse(match)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Potential lists users who teach something the caller wants to learn
// and are not already matched with them.
func (h *MatchesHandler) Potential(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	users, err := h.matchService.Potential(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "matches.Potential", err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	writeJSON(w, http.StatusOK, resp)
}
