package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
)

var generator *services.Generator

// InitPlans wires the content generator into the plan handlers
func InitPlans(g *services.Generator) {
	generator = g
}

// PlanRequest names the subject a plan is generated for
type PlanRequest struct {
	Subject string `json:"subject"`
}

// PlanResponse wraps a generated plan
type PlanResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Plan    interface{} `json:"plan,omitempty"`
}

const maxSubjectLength = 100

func planSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		respondError(w, http.StatusBadRequest, "Subject is required")
		return "", false
	}
	if len(subject) > maxSubjectLength {
		respondError(w, http.StatusBadRequest, "Subject is too long")
		return "", false
	}
	return subject, true
}

// planCacheKey builds the Redis cache key for a generated plan. Keyed by
// kind, language and lowercased subject so "Spiders" and "spiders" share an
// entry.
func planCacheKey(kind string, language models.Language, subject string) string {
	return services.CacheKey("plan:"+kind, fmt.Sprintf("%s:%s", language, strings.ToLower(subject)))
}

// GeneratePhobiaPlan handles POST /api/plans/phobia
func GeneratePhobiaPlan(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}
	if generator == nil {
		respondError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	subject, ok := planSubject(w, r)
	if !ok {
		return
	}

	key := planCacheKey("phobia", profile.Language, subject)
	var cached models.PhobiaHierarchy
	if hit, _ := services.Cache.Get(key, &cached); hit {
		respondJSON(w, http.StatusOK, PlanResponse{Success: true, Plan: &cached})
		return
	}

	plan, err := generator.GeneratePhobiaHierarchy(r.Context(), subject, profile.Language)
	if errors.Is(err, services.ErrGeneration) {
		respondError(w, http.StatusBadGateway, "Plan generation failed, please try again")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	_ = services.Cache.Set(key, plan)
	respondJSON(w, http.StatusOK, PlanResponse{Success: true, Plan: plan})
}

// GenerateAddictionPlan handles POST /api/plans/addiction
func GenerateAddictionPlan(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}
	if generator == nil {
		respondError(w, http.StatusServiceUnavailable, "Content generation is not configured")
		return
	}

	subject, ok := planSubject(w, r)
	if !ok {
		return
	}

	key := planCacheKey("addiction", profile.Language, subject)
	var cached models.AddictionPlan
	if hit, _ := services.Cache.Get(key, &cached); hit {
		respondJSON(w, http.StatusOK, PlanResponse{Success: true, Plan: &cached})
		return
	}

	plan, err := generator.GenerateAddictionPlan(r.Context(), subject, profile.Language)
	if errors.Is(err, services.ErrGeneration) {
		respondError(w, http.StatusBadGateway, "Plan generation failed, please try again")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	_ = services.Cache.Set(key, plan)
	respondJSON(w, http.StatusOK, PlanResponse{Success: true, Plan: plan})
}
