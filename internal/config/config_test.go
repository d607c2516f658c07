package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3001/api/v1", cfg.Chat.BaseURL)
	assert.Equal(t, "genm", cfg.Chat.Workspace)
	assert.Equal(t, "lyrics_generation", cfg.Chat.SessionID)
	assert.Equal(t, 120, cfg.Chat.Timeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.LyricsPerMin)
	assert.Equal(t, "auto", cfg.Storage.Region)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CHAT_WORKSPACE", "songs")
	t.Setenv("RATELIMIT_LYRICS_PER_MIN", "5")
	t.Setenv("EXPORT_FONT_PATH", "/fonts/NotoSans.ttf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "songs", cfg.Chat.Workspace)
	assert.Equal(t, 5, cfg.RateLimit.LyricsPerMin)
	assert.Equal(t, "/fonts/NotoSans.ttf", cfg.Export.FontPath)
}

func TestLoadSecretFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	secretPath := filepath.Join(dir, "chat_key")
	require.NoError(t, os.WriteFile(secretPath, []byte("  sk-from-file\n"), 0o600))
	t.Setenv("CHAT_API_KEY", "")
	t.Setenv("CHAT_API_KEY_FILE", secretPath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", cfg.Chat.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("CHAT_BASE_URL", "")
	os.Unsetenv("CHAT_BASE_URL")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHAT_BASE_URL=http://llm.internal/api/v1\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://llm.internal/api/v1", cfg.Chat.BaseURL)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
