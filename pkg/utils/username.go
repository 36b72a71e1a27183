package utils

import (
	"fmt"
	"regexp"
)

const (
	// MinUsernameLength is the minimum allowed username length
	MinUsernameLength = 3
	// MaxUsernameLength is the maximum allowed username length
	MaxUsernameLength = 20
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ValidationError represents a username validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks a username against the allowed format. Usernames
// are case sensitive and stored exactly as entered.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("must be at least %d characters long", MinUsernameLength),
		}
	}
	if len(username) > MaxUsernameLength {
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("must be at most %d characters long", MaxUsernameLength),
		}
	}
	if !usernameRegex.MatchString(username) {
		return &ValidationError{
			Field:   "username",
			Message: "can only contain letters, numbers, and underscores",
		}
	}
	return nil
}
