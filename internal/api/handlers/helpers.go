package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmontes/skillswap-web/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeInternalError(w http.ResponseWriter, scope string, err error) {
	log.Printf("ERROR [%s] %v", scope, err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// UserResponse is the public view of a user shared across handlers.
type UserResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Name        string   `json:"name"`
	Bio         string   `json:"bio,omitempty"`
	City        string   `json:"city,omitempty"`
	Title       string   `json:"title,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Role        string   `json:"role"`
	Interests   []string `json:"interests,omitempty"`
}

func toUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:          user.ID.String(),
		DisplayName: user.DisplayName,
		Name:        user.Name,
		Bio:         user.Bio,
		City:        user.City,
		Title:       user.Title,
		ImageURL:    user.ImageURL,
		Role:        string(user.Role),
	}
	if len(user.Interests) > 0 {
		_ = json.Unmarshal(user.Interests, &resp.Interests)
	}
	return resp
}
