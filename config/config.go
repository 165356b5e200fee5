package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                string
	Port               string
	RedisURL           string
	SessionSecret      string
	BaseURL            string
	LoginSuccessURL    string
	LoginErrorURL      string
	ResendAPIKey       string
	EmailFrom          string
	AppName            string
	TokenTTLMin        int
	RateLimitWindowSec int
	SessionTTLDays     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionSecret:      mustGetEnv("SESSION_SECRET"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		LoginSuccessURL:    getEnv("LOGIN_SUCCESS_URL", "/"),
		LoginErrorURL:      getEnv("LOGIN_ERROR_URL", "/auth/error"),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		EmailFrom:          getEnv("EMAIL_FROM", "no-reply@localhost"),
		AppName:            getEnv("APP_NAME", "Magic Link Service"),
		TokenTTLMin:        getEnvAsInt("TOKEN_TTL_MINUTES", 15),
		RateLimitWindowSec: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		SessionTTLDays:     getEnvAsInt("SESSION_TTL_DAYS", 7),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
