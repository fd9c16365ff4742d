package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/websocket"
)

type MessagesHandler struct {
	messageService *service.MessageService
	hub            *websocket.Hub
}

func NewMessagesHandler(messageService *service.MessageService, hub *websocket.Hub) *MessagesHandler {
	return &MessagesHandler{
		messageService: messageService,
		hub:            hub,
	}
}

type CreateConversationRequest struct {
	UserID string `json:"userId"`
}

func (h *MessagesHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	conversation, err := h.messageService.GetOrCreateConversation(r.Context(), userID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfConversation):
			writeError(w, http.StatusBadRequest, "You cannot start a conversation with yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeInternalError(w, "messages.CreateConversation", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, conversation)
}

func (h *MessagesHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	summaries, err := h.messageService.ListConversations(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "messages.ListConversations", err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *MessagesHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid conversation id")
		return
	}

	messages, err := h.messageService.ListMessages(r.Context(), conversationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, domain.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "You are not part of this conversation")
		default:
			writeInternalError(w, "messages.ListMessages", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

// Send stores the message and then pushes a best-effort notification to
// the other participants' open sockets.
func (h *MessagesHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid conversation id")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "Message body is required")
		return
	}

	message, conversation, err := h.messageService.Send(r.Context(), conversationID, userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, domain.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "You are not part of this conversation")
		default:
			writeInternalError(w, "messages.Send", err)
		}
		return
	}

	if event, err := websocket.NewEvent(websocket.EventMessageNew, message); err != nil {
		log.Printf("messages: failed to build push event: %v", err)
	} else {
		for _, recipientID := range conversation.OtherParticipants(userID) {
			h.hub.SendToUser(recipientID, event)
		}
	}

	writeJSON(w, http.StatusCreated, message)
}
