package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
)

// ChatHistoryResponse is a page of transcript history
type ChatHistoryResponse struct {
	Success  bool                 `json:"success"`
	Messages []models.ChatMessage `json:"messages"`
	HasMore  bool                 `json:"hasMore"`
}

// GetChatHistory handles GET /api/chat/history?before=<RFC3339>&limit=<n>.
// Messages come back oldest-first within the page.
func GetChatHistory(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}

	var before *time.Time
	if raw := r.URL.Query().Get("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'before' timestamp, expected RFC3339")
			return
		}
		before = &t
	}

	var limit int64 = 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		limit = n
	}

	messages, hasMore, err := services.LoadChatMessages(r.Context(), profile.Username, before, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	respondJSON(w, http.StatusOK, ChatHistoryResponse{
		Success:  true,
		Messages: messages,
		HasMore:  hasMore,
	})
}
