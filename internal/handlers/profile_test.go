package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupForTest(t *testing.T, username string) string {
	t.Helper()
	w := postJSON(Signup, "/api/auth/signup", SignupRequest{Username: username, Password: "password12"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeAuthResponse(t, w).Token
}

func putJSON(handler http.HandlerFunc, path string, body string, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, path, bytes.NewReader([]byte(body)))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestUpdateProfileHandler(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	w := putJSON(UpdateProfile, "/api/profile", `{"name":"Ana","language":"si","theme":"DARK","city":"Colombo"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeAuthResponse(t, w)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "si", string(resp.User.Language))
	assert.Equal(t, "DARK", string(resp.User.Theme))
	assert.Equal(t, "Colombo", resp.User.City)
}

func TestUpdateProfileHandlerAbsentFieldsUntouched(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	w := putJSON(UpdateProfile, "/api/profile", `{"name":"Ana","email":"ana@example.com"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	// A later update without those keys leaves them alone.
	w = putJSON(UpdateProfile, "/api/profile", `{"city":"Kandy"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeAuthResponse(t, w)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "Kandy", resp.User.City)
}

func TestUpdateProfileHandlerEmptyStringClears(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	w := putJSON(UpdateProfile, "/api/profile", `{"name":"Ana"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = putJSON(UpdateProfile, "/api/profile", `{"name":""}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeAuthResponse(t, w)
	assert.Equal(t, "", resp.User.Name)
}

func TestUpdateProfileHandlerValidation(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	w := putJSON(UpdateProfile, "/api/profile", `{"language":"fr"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = putJSON(UpdateProfile, "/api/profile", `{"theme":"NEON"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileHandlerClampsScore(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	w := putJSON(UpdateProfile, "/api/profile", `{"wellness_score":250}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, decodeAuthResponse(t, w).User.WellnessScore)

	w = putJSON(UpdateProfile, "/api/profile", `{"wellness_score":-5}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeAuthResponse(t, w).User.WellnessScore)
}

func TestUpdateProfileHandlerUnauthorized(t *testing.T) {
	setupAuthHandlers(t)

	w := putJSON(UpdateProfile, "/api/profile", `{"name":"Ana"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuizFlowHandlers(t *testing.T) {
	setupAuthHandlers(t)
	token := signupForTest(t, "ana")

	getStatus := func() QuizStatusResponse {
		r := httptest.NewRequest(http.MethodGet, "/api/quiz/status", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		GetQuizStatus(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp QuizStatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp
	}

	assert.True(t, getStatus().Needed, "a fresh account owes a check-in")

	w := postJSON(CompleteQuiz, "/api/quiz/complete", CompleteQuizRequest{WellnessScore: 64}, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeAuthResponse(t, w)
	assert.Equal(t, 64, resp.User.WellnessScore)
	require.NotNil(t, resp.User.LastQuizAt)

	assert.False(t, getStatus().Needed, "the gate closes for the rest of the day")
}
