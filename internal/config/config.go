package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds environment-based settings
type Config struct {
	ServerAddress  string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	WhatsAppVerifyToken   string
	WhatsAppToken         string
	WhatsAppPhoneNumberID string

	NominatimURL    string
	DefaultTimezone string
	DefaultCity     string

	PrewarmInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	verifyToken := os.Getenv("WHATSAPP_VERIFY_TOKEN")
	if verifyToken == "" {
		return nil, fmt.Errorf("WHATSAPP_VERIFY_TOKEN is required")
	}
	waToken := os.Getenv("WHATSAPP_TOKEN")
	if waToken == "" {
		return nil, fmt.Errorf("WHATSAPP_TOKEN is required")
	}
	phoneNumberID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")
	if phoneNumberID == "" {
		return nil, fmt.Errorf("WHATSAPP_PHONE_NUMBER_ID is required")
	}

	addr := os.Getenv("SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	migrations := os.Getenv("MIGRATIONS_PATH")
	if migrations == "" {
		migrations = "./migrations"
	}
	nominatim := os.Getenv("NOMINATIM_URL")
	if nominatim == "" {
		nominatim = "https://nominatim.openstreetmap.org"
	}
	tz := os.Getenv("DEFAULT_TIMEZONE")
	if tz == "" {
		tz = "Asia/Jakarta"
	}
	city := os.Getenv("DEFAULT_CITY")
	if city == "" {
		city = "surabaya"
	}

	prewarm := 24 * time.Hour
	if raw := os.Getenv("PREWARM_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PREWARM_INTERVAL %q: %w", raw, err)
		}
		prewarm = d
	}

	return &Config{
		ServerAddress:  addr,
		DatabaseURL:    dbURL,
		MigrationsPath: migrations,

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		WhatsAppVerifyToken:   verifyToken,
		WhatsAppToken:         waToken,
		WhatsAppPhoneNumberID: phoneNumberID,

		NominatimURL:    nominatim,
		DefaultTimezone: tz,
		DefaultCity:     city,

		PrewarmInterval: prewarm,
	}, nil
}
