package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	Name        string `json:"name"`
}

type LoginRequest struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DisplayName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Display name and password are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Name:        req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrDisplayNameExists) {
			writeError(w, http.StatusConflict, "Display name already exists")
			return
		}
		writeInternalError(w, "auth.Register", err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		User:         toUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.DisplayName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Display name and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeInternalError(w, "auth.Login", err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		User:         toUserResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeInternalError(w, "auth.Logout", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
