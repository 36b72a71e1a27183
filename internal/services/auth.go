package services

import (
	"context"
	"errors"

	"github.com/standapp/standapp-backend/internal/models"
	"github.com/standapp/standapp-backend/internal/store"
	"github.com/standapp/standapp-backend/pkg/utils"
)

var (
	// ErrUsernameTaken is returned by Signup for an existing username.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidCredentials is returned by Login for an unknown username or
	// a wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Auth composes the profile store and session store into the signup, login,
// logout and session-restore flows.
type Auth struct {
	profiles store.Profiles
	sessions store.Sessions
}

func NewAuth(profiles store.Profiles, sessions store.Sessions) *Auth {
	return &Auth{profiles: profiles, sessions: sessions}
}

// Signup registers a new user and signs them in. The profile starts with an
// empty display name (onboarding fills it in), wellness score 0, English
// language, and the colorful theme.
func (a *Auth) Signup(ctx context.Context, username, password string) (*models.UserProfile, string, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	profile, err := a.profiles.Create(ctx, &models.UserProfile{
		Username:      username,
		PasswordHash:  hash,
		Name:          "",
		WellnessScore: 0,
		Language:      models.LanguageEnglish,
		Theme:         models.ThemeColorful,
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil, "", ErrUsernameTaken
	}
	if err != nil {
		return nil, "", err
	}

	token, err := a.sessions.Create(ctx, username)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// Login verifies credentials and starts a session. A failed login leaves the
// session store untouched.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.UserProfile, string, error) {
	profile, err := a.profiles.Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	valid, err := utils.VerifyPassword(password, profile.PasswordHash)
	if err != nil || !valid {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, username)
	if err != nil {
		return nil, "", err
	}
	return profile, token, nil
}

// Logout ends the session for token. Idempotent.
func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.sessions.Delete(ctx, token)
}

// UpdateProfile applies a partial update to the named profile.
func (a *Auth) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate) (*models.UserProfile, error) {
	return a.profiles.Merge(ctx, username, update)
}

// Restore resolves a session token back to its profile. Returns (nil, nil)
// when the token is unknown or the referenced profile no longer exists; a
// dangling session pointer is left in place rather than cleared, so a
// re-created account with the same name picks the old session back up.
func (a *Auth) Restore(ctx context.Context, token string) (*models.UserProfile, error) {
	username, ok, err := a.sessions.Get(ctx, token)
	if err != nil || !ok {
		return nil, err
	}
	profile, err := a.profiles.Get(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UsernameAvailable reports whether username is free to register.
func (a *Auth) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := a.profiles.Exists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}
