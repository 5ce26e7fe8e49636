package config

import (
	"fmt"
	"os"
	"time"
)

const (
	DefaultPollTTL      = 24 * time.Hour
	DefaultReapInterval = 5 * time.Minute
)

type Config struct {
	DiscordToken string
	// GuildID scopes slash command registration to one server; empty registers globally.
	GuildID      string
	DBPath       string
	PollTTL      time.Duration
	ReapInterval time.Duration
	SentryDSN    string
	LogLevel     string
}

func Load() (*Config, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required")
	}

	pollTTL, err := durationEnv("POLL_TTL", DefaultPollTTL)
	if err != nil {
		return nil, err
	}

	reapInterval, err := durationEnv("REAP_INTERVAL", DefaultReapInterval)
	if err != nil {
		return nil, err
	}
	if reapInterval <= 0 {
		return nil, fmt.Errorf("REAP_INTERVAL must be positive")
	}

	return &Config{
		DiscordToken: token,
		GuildID:      os.Getenv("DISCORD_SERVER_ID"),
		DBPath:       os.Getenv("DB_PATH"),
		PollTTL:      pollTTL,
		ReapInterval: reapInterval,
		SentryDSN:    os.Getenv("SENTRY_DSN"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
