package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is required")

type Config struct {
	Telegram  TelegramConfig
	Wikipedia WikipediaConfig
	Log       LogConfig
	Alert     AlertConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Metrics   MetricsConfig
}

type TelegramConfig struct {
	Token string
	Debug bool
}

type WikipediaConfig struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AlertConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type SessionConfig struct {
	TTL time.Duration
}

type MetricsConfig struct {
	Addr string
}

func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug: os.Getenv("TELEGRAM_DEBUG") == "true",
		},
		Wikipedia: WikipediaConfig{
			BaseURL: getEnvOrDefault("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),
			Limit:   getEnvIntOrDefault("SEARCH_LIMIT", 10),
			Timeout: time.Duration(getEnvIntOrDefault("WIKIPEDIA_TIMEOUT_SEC", 15)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		Alert: AlertConfig{
			TTL: time.Duration(getEnvIntOrDefault("ALERT_TTL_MS", 2500)) * time.Millisecond,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 20),
		},
		Session: SessionConfig{
			TTL: time.Duration(getEnvIntOrDefault("SESSION_TTL_MIN", 60)) * time.Minute,
		},
		Metrics: MetricsConfig{
			Addr: getEnvOrDefault("METRICS_ADDR", ":9090"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
