package store

import (
	"context"
	"errors"

	"github.com/standapp/standapp-backend/internal/models"
)

var (
	// ErrAlreadyExists is returned by Create when the username is taken.
	ErrAlreadyExists = errors.New("profile already exists")
	// ErrNotFound is returned when the username has no profile.
	ErrNotFound = errors.New("profile not found")
)

// Profiles is the durable username -> profile mapping. Keys are
// case-sensitive exact matches. Every mutating call commits before
// returning.
type Profiles interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, error)
	Get(ctx context.Context, username string) (*models.UserProfile, error)
	Merge(ctx context.Context, username string, update models.ProfileUpdate) (*models.UserProfile, error)
}

// Sessions tracks which user is signed in. Each user holds at most one live
// session; creating a new one replaces the old.
type Sessions interface {
	// Create issues an opaque token for username, replacing any prior
	// session for that user.
	Create(ctx context.Context, username string) (string, error)
	// Get resolves a token to its username. ok is false for unknown or
	// expired tokens.
	Get(ctx context.Context, token string) (username string, ok bool, err error)
	// Delete removes a session. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error
}
