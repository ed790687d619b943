package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-driven settings for the server.
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	TokenExpiry    time.Duration
	FrontendOrigin string
}

// LoadConfig reads configuration from the .env file and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment variables")
	}

	expiry := 24 * time.Hour
	if raw := os.Getenv("TOKEN_EXPIRY"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			expiry = parsed
		} else {
			logrus.WithError(err).Warnf("Invalid TOKEN_EXPIRY %q, using default", raw)
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "socialee"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenExpiry:    expiry,
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
