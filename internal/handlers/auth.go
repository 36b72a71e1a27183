package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/services"
	"github.com/standapp/standapp-backend/pkg/utils"
)

var authService *services.Auth

// Init wires the auth service into the handler package
func Init(auth *services.Auth) {
	authService = auth
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SigninRequest represents the signin request body
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents auth operation responses
type AuthResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	User    *models.UserProfile `json:"user,omitempty"`
	Token   string              `json:"token,omitempty"`
}

// extractBearerToken pulls the session token from the Authorization header
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// requireAuth resolves the request's session to a profile, writing a 401
// response when the token is missing or stale. Returns nil after writing.
func requireAuth(w http.ResponseWriter, r *http.Request) *models.UserProfile {
	token := extractBearerToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return nil
	}
	profile, err := authService.Restore(r.Context(), token)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to restore session")
		return nil
	}
	if profile == nil {
		respondError(w, http.StatusUnauthorized, "Invalid or expired session")
		return nil
	}
	return profile
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, AuthResponse{Success: false, Message: message})
}

// Signup handles POST /api/auth/signup
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	profile, token, err := authService.Signup(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrUsernameTaken) {
		respondError(w, http.StatusConflict, "Username is already taken")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		User:    profile,
		Token:   token,
	})
}

// Signin handles POST /api/auth/signin
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	profile, token, err := authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Signed in successfully",
		User:    profile,
		Token:   token,
	})
}

// Signout handles POST /api/auth/signout. Idempotent: signing out an already
// dead session still succeeds.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token != "" {
		if err := authService.Logout(r.Context(), token); err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to sign out")
			return
		}
	}
	respondJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Signed out successfully"})
}

// GetMe handles GET /api/auth/me, restoring the session's profile
func GetMe(w http.ResponseWriter, r *http.Request) {
	profile := requireAuth(w, r)
	if profile == nil {
		return
	}
	respondJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "Session restored", User: profile})
}

// CheckUsernameRequest represents the username availability request body
type CheckUsernameRequest struct {
	Username string `json:"username"`
}

// CheckUsernameAvailability handles POST /api/auth/check-username
func CheckUsernameAvailability(w http.ResponseWriter, r *http.Request) {
	var req CheckUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"available": false,
			"message":   err.Error(),
		})
		return
	}

	available, err := authService.UsernameAvailable(r.Context(), req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check username")
		return
	}

	message := "Username is available"
	if !available {
		message = "Username is already taken"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"available": available,
		"message":   message,
	})
}
