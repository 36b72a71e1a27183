package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is how long a session lives without a fresh login.
	SessionDuration = 7 * 24 * time.Hour

	sessionKeyPrefix     = "session:"
	userSessionKeyPrefix = "user_session:"
)

// RedisSessions keeps token -> username and username -> token keys in Redis
// with a 7-day TTL. The reverse key is what enforces the single-session-per-
// user slot: a new login deletes the previous token before issuing a new one.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) Create(ctx context.Context, username string) (string, error) {
	// Drop any existing session so the slot holds exactly one token.
	if old, err := s.client.Get(ctx, userSessionKeyPrefix+username).Result(); err == nil && old != "" {
		s.client.Del(ctx, sessionKeyPrefix+old)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, sessionKeyPrefix+token, username, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, userSessionKeyPrefix+username, token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessions) Get(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	username, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		// Fail closed: an unreadable session store means no session.
		return "", false, nil
	}
	return username, true, nil
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if username, err := s.client.Get(ctx, sessionKeyPrefix+token).Result(); err == nil && username != "" {
		s.client.Del(ctx, userSessionKeyPrefix+username)
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
