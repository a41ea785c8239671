package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(env(map[string]string{
		"TELEGRAM_TOKEN": "token",
		"DB_DSN":         "postgres://localhost/bot",
	}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Equal(t, 7, cfg.ExpiryAlertDays)
	assert.Equal(t, "0 9 * * *", cfg.ExpiryAlertCron)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(env(map[string]string{
		"TELEGRAM_TOKEN":    "token",
		"DB_DSN":            "dsn",
		"ENV":               "production",
		"API_BASE_URL":      "https://home.example/api",
		"API_TIMEOUT":       "3s",
		"TIMEZONE":          "UTC",
		"EXPIRY_ALERT_DAYS": "14",
		"EXPIRY_ALERT_CRON": "30 8 * * 1",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://home.example/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 14, cfg.ExpiryAlertDays)
	assert.Equal(t, "30 8 * * 1", cfg.ExpiryAlertCron)
}

func TestFromLookupErrors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"TELEGRAM_TOKEN": "token", "DB_DSN": "dsn"}
	}

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"missing token", "TELEGRAM_TOKEN", "", "TELEGRAM_TOKEN is required"},
		{"missing dsn", "DB_DSN", "", "DB_DSN is required"},
		{"bad timeout", "API_TIMEOUT", "soon", "invalid API_TIMEOUT"},
		{"negative timeout", "API_TIMEOUT", "-1s", "invalid API_TIMEOUT"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus", "invalid TIMEZONE"},
		{"bad days", "EXPIRY_ALERT_DAYS", "-3", "invalid EXPIRY_ALERT_DAYS"},
		{"bad cron", "EXPIRY_ALERT_CRON", "every morning", "invalid EXPIRY_ALERT_CRON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := base()
			vars[tt.key] = tt.value
			_, err := FromLookup(env(vars))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
