package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standapp/standapp-backend/internal/models"
)

func newProfile(username string) *models.UserProfile {
	return &models.UserProfile{
		Username:     username,
		PasswordHash: "hash",
		Language:     models.LanguageEnglish,
		Theme:        models.ThemeColorful,
	}
}

func TestMemoryProfilesCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	created, err := s.Create(ctx, newProfile("ana"))
	require.NoError(t, err)
	assert.Equal(t, "ana", created.Username)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, created.Username, got.Username)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestMemoryProfilesCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	_, err := s.Create(ctx, newProfile("ana"))
	require.NoError(t, err)

	_, err = s.Create(ctx, newProfile("ana"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestMemoryProfilesCaseSensitiveKeys(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	_, err := s.Create(ctx, newProfile("Ana"))
	require.NoError(t, err)

	_, err = s.Get(ctx, "ana")
	assert.ErrorIs(t, err, ErrNotFound)

	exists, err := s.Exists(ctx, "Ana")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemoryProfilesGetUnknown(t *testing.T) {
	s := NewMemoryProfiles()
	_, err := s.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfilesMergePartial(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	_, err := s.Create(ctx, &models.UserProfile{
		Username:     "ana",
		PasswordHash: "hash",
		Name:         "Ana",
		Email:        "ana@example.com",
		Language:     models.LanguageEnglish,
		Theme:        models.ThemeColorful,
	})
	require.NoError(t, err)

	city := "Colombo"
	updated, err := s.Merge(ctx, "ana", models.ProfileUpdate{City: &city})
	require.NoError(t, err)

	assert.Equal(t, "Colombo", updated.City)
	assert.Equal(t, "Ana", updated.Name, "untouched fields survive a merge")
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestMemoryProfilesMergeEmptyStringOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	_, err := s.Create(ctx, &models.UserProfile{
		Username: "ana",
		Name:     "Ana",
		Language: models.LanguageEnglish,
		Theme:    models.ThemeColorful,
	})
	require.NoError(t, err)

	empty := ""
	updated, err := s.Merge(ctx, "ana", models.ProfileUpdate{Name: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Name, "an explicit empty string clears the field")
}

func TestMemoryProfilesMergeUnknown(t *testing.T) {
	s := NewMemoryProfiles()
	name := "x"
	_, err := s.Merge(context.Background(), "ghost", models.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfilesCloneIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	created, err := s.Create(ctx, newProfile("ana"))
	require.NoError(t, err)

	created.Name = "mutated"
	got, err := s.Get(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "", got.Name, "callers never share the stored record")
}

func TestMemorySessionsSingleSlot(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	first, err := s.Create(ctx, "ana")
	require.NoError(t, err)
	second, err := s.Create(ctx, "ana")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, ok, err := s.Get(ctx, first)
	require.NoError(t, err)
	assert.False(t, ok, "a new login invalidates the previous token")

	username, ok, err := s.Get(ctx, second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ana", username)
}

func TestMemorySessionsDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	token, err := s.Create(ctx, "ana")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, token))
	_, ok, err := s.Get(ctx, token)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an unknown token is a no-op.
	assert.NoError(t, s.Delete(ctx, "no-such-token"))
}

func TestMemorySessionsIndependentUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessions()

	anaToken, err := s.Create(ctx, "ana")
	require.NoError(t, err)
	benToken, err := s.Create(ctx, "ben")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, anaToken))

	username, ok, err := s.Get(ctx, benToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ben", username)
}

func TestMemoryProfilesMergeUpdatesTimestamp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProfiles()

	created, err := s.Create(ctx, newProfile("ana"))
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	name := "Ana"
	updated, err := s.Merge(ctx, "ana", models.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}
