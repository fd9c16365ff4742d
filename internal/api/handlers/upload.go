package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/media"
	"github.com/jmontes/skillswap-web/internal/service"
)

// maxUploadBytes caps profile pictures at 5 MB.
const maxUploadBytes = 5 << 20

type UploadHandler struct {
	profileService *service.ProfileService
	media          *media.Client
}

func NewUploadHandler(profileService *service.ProfileService, mediaClient *media.Client) *UploadHandler {
	return &UploadHandler{
		profileService: profileService,
		media:          mediaClient,
	}
}

// UploadImage replaces the caller's profile picture. The previous asset
// is deleted from the CDN on a best-effort basis.
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No autenticado")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "upload.UploadImage", err)
		return
	}

	asset, err := h.media.Upload(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "Image uploads are not available")
			return
		}
		writeInternalError(w, "upload.UploadImage", err)
		return
	}

	if previous := profile.User.ImageAssetID; previous != "" {
		if err := h.media.Delete(r.Context(), previous); err != nil {
			log.Printf("upload: failed to delete previous asset %s: %v", previous, err)
		}
	}

	user, err := h.profileService.SetImage(r.Context(), userID, asset.URL, asset.ID)
	if err != nil {
		writeInternalError(w, "upload.UploadImage", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
