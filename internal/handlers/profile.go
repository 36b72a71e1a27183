package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/standapp/standapp-backend/internal/models"
)

// UpdateProfileRequest carries a partial profile update. Absent fields are
// left untouched; present fields overwrite, including empty strings.
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	WellnessScore *int    `json:"wellness_score"`
	Language      *string `json:"language"`
	Theme         *string `json:"theme"`
	Email         *string `json:"email"`
	Birthday      *string `json:"birthday"`
	Sex           *string `json:"sex"`
	CivilStatus   *string `json:"civil_status"`
	City          *string `json:"city"`
	AvatarURL     *string `json:"avatar_url"`
}

// UpdateProfile handles PUT /api/profile
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := models.ProfileUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Birthday:    req.Birthday,
		Sex:         req.Sex,
		CivilStatus: req.CivilStatus,
		City:        req.City,
		AvatarURL:   req.AvatarURL,
	}

	if req.WellnessScore != nil {
		score := *req.WellnessScore
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		update.WellnessScore = &score
	}
	if req.Language != nil {
		if !models.ValidLanguage(*req.Language) {
			respondError(w, http.StatusBadRequest, "Language must be 'en' or 'si'")
			return
		}
		lang := models.Language(*req.Language)
		update.Language = &lang
	}
	if req.Theme != nil {
		if !models.ValidTheme(*req.Theme) {
			respondError(w, http.StatusBadRequest, "Theme must be 'COLORFUL' or 'DARK'")
			return
		}
		theme := models.Theme(*req.Theme)
		update.Theme = &theme
	}

	updated, err := authService.UpdateProfile(r.Context(), profile.Username, update)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    updated,
	})
}
