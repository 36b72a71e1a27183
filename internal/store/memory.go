package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/standapp/standapp-backend/internal/models"
)

// MemoryProfiles is a map-backed Profiles implementation. Used by tests and
// as a no-database fallback for local development.
type MemoryProfiles struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[string]*models.UserProfile)}
}

func (s *MemoryProfiles) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.profiles[username]
	return ok, nil
}

func (s *MemoryProfiles) Create(_ context.Context, profile *models.UserProfile) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.Username]; ok {
		return nil, ErrAlreadyExists
	}
	now := time.Now().UTC()
	p := profile.Clone()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.profiles[p.Username] = p
	return p.Clone(), nil
}

func (s *MemoryProfiles) Get(_ context.Context, username string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[username]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryProfiles) Merge(_ context.Context, username string, update models.ProfileUpdate) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[username]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	return p.Clone(), nil
}

// MemorySessions is a map-backed Sessions implementation with the same
// one-session-per-user slot behavior as RedisSessions.
type MemorySessions struct {
	mu      sync.Mutex
	byToken map[string]string // token -> username
	byUser  map[string]string // username -> token
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

func (s *MemorySessions) Create(_ context.Context, username string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[username]; ok {
		delete(s.byToken, old)
	}
	s.byToken[token] = username
	s.byUser[username] = token
	return token, nil
}

func (s *MemorySessions) Get(_ context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.byToken[token]
	return username, ok, nil
}

func (s *MemorySessions) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if username, ok := s.byToken[token]; ok {
		delete(s.byUser, username)
		delete(s.byToken, token)
	}
	return nil
}
