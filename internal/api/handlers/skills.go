package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/domain"
	"github.com/jmontes/skillswap-web/internal/service"
)

type SkillsHandler struct {
	profileService *service.ProfileService
}

func NewSkillsHandler(profileService *service.ProfileService) *SkillsHandler {
	return &SkillsHandler{profileService: profileService}
}

type SkillRequest struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type UpdateSkillRequest struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Skill name is required")
		return
	}

	skill, err := h.profileService.AddSkill(r.Context(), userID, req.Name, req.Level)
	if err != nil {
		writeInternalError(w, "skills.Create", err)
		return
	}

	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req UpdateSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skillID, err := uuid.Parse(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}

	skill, err := h.profileService.UpdateSkill(r.Context(), skillID, userID, req.Name, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			writeError(w, http.StatusNotFound, "Skill not found")
		case errors.Is(err, domain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Skill does not belong to you")
		default:
			writeInternalError(w, "skills.Update", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	skillID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}

	if err := h.profileService.DeleteSkill(r.Context(), skillID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			writeError(w, http.StatusNotFound, "Skill not found")
		case errors.Is(err, domain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Skill does not belong to you")
		default:
			writeInternalError(w, "skills.Delete", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SkillsHandler) CreateWanted(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Skill name is required")
		return
	}

	skill, err := h.profileService.AddWantedSkill(r.Context(), userID, req.Name, req.Level)
	if err != nil {
		writeInternalError(w, "skills.CreateWanted", err)
		return
	}

	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillsHandler) DeleteWanted(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	skillID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid skill id")
		return
	}

	if err := h.profileService.DeleteWantedSkill(r.Context(), skillID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			writeError(w, http.StatusNotFound, "Skill not found")
		case errors.Is(err, domain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Skill does not belong to you")
		default:
			writeInternalError(w, "skills.DeleteWanted", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *SkillsHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Language name is required")
		return
	}

	language, err := h.profileService.AddLanguage(r.Context(), userID, req.Name, req.Level)
	if err != nil {
		writeInternalError(w, "skills.CreateLanguage", err)
		return
	}

	writeJSON(w, http.StatusCreated, language)
}

func (h *SkillsHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	languageID, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid language id")
		return
	}

	if err := h.profileService.DeleteLanguage(r.Context(), languageID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrSkillNotFound):
			writeError(w, http.StatusNotFound, "Language not found")
		case errors.Is(err, domain.ErrNotOwner):
			writeError(w, http.StatusForbidden, "Language does not belong to you")
		default:
			writeInternalError(w, "skills.DeleteLanguage", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
