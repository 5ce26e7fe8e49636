package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllEnvVarsSet(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("DISCORD_SERVER_ID", "1234")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("POLL_TTL", "2h")
	t.Setenv("REAP_INTERVAL", "30s")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, &Config{
		DiscordToken: "test-token",
		GuildID:      "1234",
		DBPath:       "/tmp/test.db",
		PollTTL:      2 * time.Hour,
		ReapInterval: 30 * time.Second,
		SentryDSN:    "https://key@sentry.example/1",
		LogLevel:     "debug",
	}, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("DISCORD_SERVER_ID", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("POLL_TTL", "")
	t.Setenv("REAP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.GuildID)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, DefaultPollTTL, cfg.PollTTL)
	assert.Equal(t, DefaultReapInterval, cfg.ReapInterval)
}

func TestLoad_ZeroTTLDisablesExpiry(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("POLL_TTL", "0")
	t.Setenv("REAP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.PollTTL)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDurations(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"POLL_TTL", "tomorrow"},
		{"POLL_TTL", "-1h"},
		{"REAP_INTERVAL", "0s"},
		{"REAP_INTERVAL", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("DISCORD_TOKEN", "test-token")
			t.Setenv("POLL_TTL", "")
			t.Setenv("REAP_INTERVAL", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
