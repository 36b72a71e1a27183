package handlers

import (
	"net/http"
	"strings"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires the Cloudinary uploader into the handlers
func InitCloudinaryService(s *services.CloudinaryService) {
	cloudinaryService = s
}

const maxAvatarSize = 10 << 20 // 10 MB

// UploadAvatar handles POST /api/upload/avatar. The uploaded image replaces
// the user's avatar URL on their profile.
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}
	if cloudinaryService == nil {
		respondError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(w, http.StatusBadRequest, "File must be an image")
		return
	}

	url, err := cloudinaryService.UploadImage(r.Context(), file, "standapp/avatars")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	updated, err := authService.UpdateProfile(r.Context(), profile.Username, models.ProfileUpdate{
		AvatarURL: &url,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save avatar")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Avatar uploaded successfully",
		User:    updated,
	})
}
