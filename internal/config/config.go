package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the service.
type Config struct {
	Port              string
	DBDriver          string
	DatabaseURL       string
	BotToken          string
	TelegramAPIURL    string
	AdminChatID       int64
	JWTSecret         string
	AdminPasswordHash string
	RedisURL          string
	IdempotencyTTL    time.Duration
	CORSOrigins       []string
	ShopTimezone      string
	NotifyRateLimit   int
	InitDataMaxAge    time.Duration
	LogLevel          string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:              get("APP_PORT", "8080"),
		DBDriver:          get("DB_DRIVER", "postgres"),
		DatabaseURL:       get("DATABASE_URL", ""),
		BotToken:          get("BOT_TOKEN", ""),
		TelegramAPIURL:    strings.TrimRight(get("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
		JWTSecret:         get("JWT_SECRET", ""),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),
		RedisURL:          get("REDIS_URL", ""),
		ShopTimezone:      get("SHOP_TIMEZONE", "Asia/Almaty"),
		LogLevel:          get("LOG_LEVEL", "info"),
	}

	for _, o := range strings.Split(get("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	var err error
	if raw := get("ADMIN_CHAT_ID", ""); raw != "" {
		if cfg.AdminChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_CHAT_ID: %w", err)
		}
	}
	if cfg.NotifyRateLimit, err = strconv.Atoi(get("NOTIFY_RATE_LIMIT", "5")); err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_RATE_LIMIT: %w", err)
	}
	if cfg.IdempotencyTTL, err = time.ParseDuration(get("IDEMPOTENCY_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
	}
	if cfg.InitDataMaxAge, err = time.ParseDuration(get("INIT_DATA_MAX_AGE", "24h")); err != nil {
		return nil, fmt.Errorf("invalid INIT_DATA_MAX_AGE: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// Location resolves ShopTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ShopTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
