package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	NatsURL       string
	NatsToken     string
	LogLevel      string
	SlackBotToken string
	SlackChannel  string
	APIToken      string
	PatternSize   int
	Workers       int
	DeafThreshold float64
}

func Load() Config {
	return Config{
		Port:          envInt("BREAKDOWNS_PORT", 8760),
		DatabaseURL:   envStr("DATABASE_URL", ""),
		NatsURL:       envStr("NATS_URL", ""),
		NatsToken:     envStr("NATS_TOKEN", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		SlackBotToken: envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:  envStr("SLACK_CHANNEL", ""),
		APIToken:      envStr("BREAKDOWNS_API_TOKEN", ""),
		PatternSize:   envInt("BREAKDOWNS_PATTERN_SIZE", 3),
		Workers:       envInt("BREAKDOWNS_WORKERS", 1),
		DeafThreshold: envFloat("BREAKDOWNS_DEAF_THRESHOLD", 0.9),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
