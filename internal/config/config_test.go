package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadClean(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	for _, key := range []string{
		"GABAI_PORT", "GABAI_HOST", "GABAI_CHAT_STORAGE", "GABAI_DATA_DIR",
		"OPENAI_API_KEY", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER",
		"POSTGRES_PASSWORD", "POSTGRES_DB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoad_DefaultsBindMultiWordKeys(t *testing.T) {
	cfg := loadClean(t)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)

	assert.Equal(t, "local", cfg.Chat.Storage)
	assert.Equal(t, "./data", cfg.Chat.DataDir)
	assert.Equal(t, time.Second, cfg.Chat.TypingDelayMin)
	assert.Equal(t, 2*time.Second, cfg.Chat.TypingDelayMax)
	assert.Equal(t, 150*time.Millisecond, cfg.Chat.SessionSwitchDelay)

	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)

	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Setenv("GABAI_PORT", "9090")
	t.Setenv("GABAI_CHAT_STORAGE", "postgres")
	t.Setenv("GABAI_DATA_DIR", "/var/lib/gabai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Chat.Storage)
	assert.Equal(t, "/var/lib/gabai", cfg.Chat.DataDir)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
