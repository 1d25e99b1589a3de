// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	// Event bus. Publishing is disabled when AMQPURL is empty.
	AMQPURL string

	// Redis stats cache. Caching is disabled when RedisAddr is empty.
	RedisAddr     string
	StatsCacheTTL time.Duration

	// Shared secret with the external auth service that issues bearer tokens.
	AuthJWTSecret string

	// SMTP provider (email channel)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	FromName string

	// SMS provider (HTTP API)
	SMSAPIURL string
	SMSAPIKey string

	// WhatsApp provider (HTTP API)
	WhatsAppAPIURL string
	WhatsAppToken  string

	// Dispatch tuning
	DispatchWorkers int
	SendTimeout     time.Duration
}

// Load reads configuration from .env / OS environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables directly.")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		StatsCacheTTL:   getEnvDuration("STATS_CACHE_TTL", 30*time.Second),
		AuthJWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
		FromName:        getEnv("FROM_NAME", "Campaigns"),
		SMSAPIURL:       os.Getenv("SMS_API_URL"),
		SMSAPIKey:       os.Getenv("SMS_API_KEY"),
		WhatsAppAPIURL:  os.Getenv("WHATSAPP_API_URL"),
		WhatsAppToken:   os.Getenv("WHATSAPP_TOKEN"),
		DispatchWorkers: getEnvInt("DISPATCH_WORKERS", 5),
		SendTimeout:     getEnvDuration("SEND_TIMEOUT", 10*time.Second),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
		)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("%s not set or invalid, defaulting to %d", key, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("%s not set or invalid, defaulting to %s", key, fallback)
		return fallback
	}
	return d
}
