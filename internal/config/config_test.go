package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.HasCloudinary())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestParseOrigins(t *testing.T) {
	origins := parseOrigins("https://standapp.lk/, http://localhost:3000 ,,")
	assert.Equal(t, []string{"https://standapp.lk", "http://localhost:3000"}, origins)
}

func TestHasCloudinary(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	cfg := Load()
	assert.False(t, cfg.HasCloudinary(), "all three credentials are required")

	t.Setenv("CLOUDINARY_API_SECRET", "secret")
	cfg = Load()
	assert.True(t, cfg.HasCloudinary())
}
