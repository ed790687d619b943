package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("TOKEN_EXPIRY", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "socialee", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendOrigin)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_EXPIRY", "2h")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadConfigBadExpiryFallsBack(t *testing.T) {
	t.Setenv("TOKEN_EXPIRY", "not-a-duration")

	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
}
