package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, 14*24*time.Hour, c.TokenTTL())
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
	assert.Empty(t, c.TilesFile)
	assert.False(t, c.Production())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("LOG_PRETTY", "true")

	c, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 15*time.Minute, c.SessionTTL)
	assert.True(t, c.Production())
	assert.True(t, c.LogPretty)
}

func TestParseErrors(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")

	t.Setenv("JWT_EXPIRES_DAYS", "0")
	_, err = Parse()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DAILY_SALT=from_file\n"), 0o600))
	// register for restore; godotenv does not override set variables
	t.Setenv("DAILY_SALT", "")
	require.NoError(t, os.Unsetenv("DAILY_SALT"))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_file", c.DailySalt)
}
