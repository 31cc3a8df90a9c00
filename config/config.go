package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration, loaded once at startup and
// read-only afterwards. The signing secret is injected into the credential
// service from here rather than read from the environment ad hoc.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	JWTSecret  string
	TokenTTL   time.Duration
	CookieName string

	AllowedOrigins []string

	SnapshotMaxBytes int
}

const (
	defaultPort             = "8080"
	defaultTokenTTL         = 7 * 24 * time.Hour
	defaultCookieName       = "token"
	defaultSnapshotMaxBytes = 1 << 20
)

// Load reads configuration from the environment, optionally seeded from a
// .env file in the working directory.
func Load() (*Config, error) {
	// A missing .env file is fine; the OS environment is authoritative.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             env("PORT", defaultPort),
		DBUser:           strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:       strings.TrimSpace(os.Getenv("DB_PASSWORD")),
		DBHost:           strings.TrimSpace(os.Getenv("DB_HOST")),
		DBPort:           strings.TrimSpace(os.Getenv("DB_PORT")),
		DBName:           strings.TrimSpace(os.Getenv("DB_NAME")),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:         defaultTokenTTL,
		CookieName:       defaultCookieName,
		SnapshotMaxBytes: defaultSnapshotMaxBytes,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}

	if v := strings.TrimSpace(os.Getenv("TOKEN_TTL")); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("TOKEN_TTL is not a valid duration")
		}
		cfg.TokenTTL = ttl
	}

	if v := strings.TrimSpace(os.Getenv("SNAPSHOT_MAX_BYTES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, errors.New("SNAPSHOT_MAX_BYTES is not a positive integer")
		}
		cfg.SnapshotMaxBytes = n
	}

	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
