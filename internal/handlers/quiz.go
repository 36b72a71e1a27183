package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
)

// QuizStatusResponse reports whether the daily check-in is due
type QuizStatusResponse struct {
	Success bool `json:"success"`
	Needed  bool `json:"needed"`
}

// GetQuizStatus handles GET /api/quiz/status. The gate resets at local
// calendar midnight, not 24 hours after the last check-in.
func GetQuizStatus(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}

	needed := services.NeedsDailyCheckIn(profile, time.Now())
	respondJSON(w, http.StatusOK, QuizStatusResponse{Success: true, Needed: needed})
}

// CompleteQuizRequest carries the daily check-in result
type CompleteQuizRequest struct {
	WellnessScore int `json:"wellness_score"`
}

// CompleteQuiz handles POST /api/quiz/complete, recording the wellness score
// and stamping the check-in time
func CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}

	var req CompleteQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	score := req.WellnessScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	now := time.Now()

	updated, err := authService.UpdateProfile(r.Context(), profile.Username, models.ProfileUpdate{
		WellnessScore: &score,
		LastQuizAt:    &now,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record check-in")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Check-in recorded",
		User:    updated,
	})
}
