package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/store"
)

func newTestAuth() (*Auth, *store.MemoryProfiles, *store.MemorySessions) {
	profiles := store.NewMemoryProfiles()
	sessions := store.NewMemorySessions()
	return NewAuth(profiles, sessions), profiles, sessions
}

func TestSignupCreatesProfileWithDefaults(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	profile, token, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "ana", profile.Username)
	assert.Equal(t, "", profile.Name)
	assert.Equal(t, 0, profile.WellnessScore)
	assert.Nil(t, profile.LastQuizAt)
	assert.Equal(t, models.LanguageEnglish, profile.Language)
	assert.Equal(t, models.ThemeColorful, profile.Theme)
	assert.NotEqual(t, "password12", profile.PasswordHash)
}

func TestSignupDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	auth, profiles, _ := newTestAuth()

	first, _, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	_, _, err = auth.Signup(ctx, "ana", "otherpass34")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The stored profile is untouched by the failed attempt.
	stored, err := profiles.Get(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, stored.PasswordHash)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	created, _, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	logged, token, err := auth.Login(ctx, "ana", "password12")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, created.Username, logged.Username)
	assert.Equal(t, created.PasswordHash, logged.PasswordHash)
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	auth, _, sessions := newTestAuth()

	_, goodToken, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, "ana", "wrongpass99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The failed attempt leaves the existing session alive.
	username, ok, err := sessions.Get(ctx, goodToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ana", username)
}

func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	// Unknown username and wrong password are indistinguishable.
	_, _, err := auth.Login(ctx, "ghost", "password12")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginReplacesSession(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	_, firstToken, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	_, secondToken, err := auth.Login(ctx, "ana", "password12")
	require.NoError(t, err)
	require.NotEqual(t, firstToken, secondToken)

	stale, err := auth.Restore(ctx, firstToken)
	require.NoError(t, err)
	assert.Nil(t, stale)

	live, err := auth.Restore(ctx, secondToken)
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, "ana", live.Username)
}

func TestLogoutEndsSession(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	_, token, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, token))

	profile, err := auth.Restore(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, profile)

	// Logout is idempotent.
	assert.NoError(t, auth.Logout(ctx, token))
}

func TestRestoreUnknownToken(t *testing.T) {
	auth, _, _ := newTestAuth()

	profile, err := auth.Restore(context.Background(), "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUpdateProfileMerges(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	_, _, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	name := "Ana"
	lang := models.LanguageSinhala
	updated, err := auth.UpdateProfile(ctx, "ana", models.ProfileUpdate{
		Name:     &name,
		Language: &lang,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, models.LanguageSinhala, updated.Language)
	assert.Equal(t, models.ThemeColorful, updated.Theme, "unset fields keep their values")
}

func TestUsernameAvailable(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	free, err := auth.UsernameAvailable(ctx, "ana")
	require.NoError(t, err)
	assert.True(t, free)

	_, _, err = auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)

	free, err = auth.UsernameAvailable(ctx, "ana")
	require.NoError(t, err)
	assert.False(t, free)

	// Availability is case sensitive like the store keys.
	free, err = auth.UsernameAvailable(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, free)
}

// TestDailyFlow walks a full day of usage: signup, onboarding, check-in, and
// the gate reopening the next day.
func TestDailyFlow(t *testing.T) {
	ctx := context.Background()
	auth, _, _ := newTestAuth()

	profile, token, err := auth.Signup(ctx, "ana", "password12")
	require.NoError(t, err)
	require.True(t, NeedsDailyCheckIn(profile, time.Now()))

	name := "Ana"
	profile, err = auth.UpdateProfile(ctx, "ana", models.ProfileUpdate{Name: &name})
	require.NoError(t, err)

	score := 72
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	profile, err = auth.UpdateProfile(ctx, "ana", models.ProfileUpdate{
		WellnessScore: &score,
		LastQuizAt:    &now,
	})
	require.NoError(t, err)
	assert.Equal(t, 72, profile.WellnessScore)
	assert.Equal(t, "Ana", profile.Name)

	restored, err := auth.Restore(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, restored)

	assert.False(t, NeedsDailyCheckIn(restored, now.Add(time.Hour)))
	assert.True(t, NeedsDailyCheckIn(restored, now.Add(24*time.Hour)))
}
