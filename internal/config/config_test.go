package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL": "postgres://localhost/shop",
		"JWT_SECRET":   "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 5, cfg.NotifyRateLimit)
	assert.Zero(t, cfg.AdminChatID)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL":         "file:shop.db",
		"DB_DRIVER":            "sqlite",
		"JWT_SECRET":           "s3cret",
		"ADMIN_CHAT_ID":        "123456789",
		"TELEGRAM_API_URL":     "http://localhost:9000/",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"IDEMPOTENCY_TTL":      "1h",
	}))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(123456789), cfg.AdminChatID)
	assert.Equal(t, "http://localhost:9000", cfg.TelegramAPIURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.Hour, cfg.IdempotencyTTL)
}

func TestFromEnv_Invalid(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"JWT_SECRET": "x"}))
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = FromEnv(env(map[string]string{
		"DATABASE_URL":  "x",
		"JWT_SECRET":    "x",
		"ADMIN_CHAT_ID": "not-a-number",
	}))
	assert.ErrorContains(t, err, "ADMIN_CHAT_ID")
}
