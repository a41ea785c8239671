package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultAPIBaseURL      = "http://localhost:8000/api"
	defaultAPITimeout      = 10 * time.Second
	defaultExpiryAlertDays = 7
	defaultExpiryAlertCron = "0 9 * * *"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	APIBaseURL string
	APITimeout time.Duration
	Location   *time.Location

	// за сколько дней до конца срока предупреждать о расходниках
	ExpiryAlertDays int
	ExpiryAlertCron string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// .env необязателен, в контейнере всё приходит через окружение
	_ = godotenv.Load(".env")
	return FromLookup(os.LookupEnv)
}

// FromLookup собирает конфиг через произвольный источник переменных
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := &Config{
		TelegramToken:   get("TELEGRAM_TOKEN"),
		DBDSN:           get("DB_DSN"),
		Environment:     get("ENV"),
		APIBaseURL:      get("API_BASE_URL"),
		APITimeout:      defaultAPITimeout,
		Location:        time.Local,
		ExpiryAlertDays: defaultExpiryAlertDays,
		ExpiryAlertCron: get("EXPIRY_ALERT_CRON"),
	}

	// Дефолты
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.ExpiryAlertCron == "" {
		cfg.ExpiryAlertCron = defaultExpiryAlertCron
	}

	if raw := get("API_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid API_TIMEOUT %q", raw)
		}
		cfg.APITimeout = d
	}

	if raw := get("TIMEZONE"); raw != "" {
		loc, err := time.LoadLocation(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", raw, err)
		}
		cfg.Location = loc
	}

	if raw := get("EXPIRY_ALERT_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid EXPIRY_ALERT_DAYS %q", raw)
		}
		cfg.ExpiryAlertDays = days
	}

	if _, err := cron.ParseStandard(cfg.ExpiryAlertCron); err != nil {
		return nil, fmt.Errorf("invalid EXPIRY_ALERT_CRON %q: %w", cfg.ExpiryAlertCron, err)
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
