package handlers

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	hub         *websocket.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *websocket.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

// Serve authenticates via the token query parameter, since browsers
// cannot set headers on websocket requests, then upgrades and registers
// the connection for pushes.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	sub, ok := (*claims)["sub"].(string)
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
