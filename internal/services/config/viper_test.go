package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestViperConfigService_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := NewViperConfigService(nil).Load()
	require.NoError(t, err)

	assert.Equal(t, defaultAPIKey, cfg.APIKey)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 3, cfg.MinQueryLength)
	assert.Equal(t, 10, cfg.MaxRating)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 128, cfg.CacheSize)
	assert.False(t, cfg.Demo)

	_, err = os.Stat(filepath.Join(dir, "popcorn", "config.yml"))
	assert.NoError(t, err, "a default config file should be written")
}

func TestViperConfigService_FileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "popcorn"), 0755))
	content := "maxRating: 5\nrequestTimeout: 3s\ncacheSize: 16\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "popcorn", "config.yml"), []byte(content), 0644))

	t.Setenv("POPCORN_MINQUERYLENGTH", "4")

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--api-key", "secret", "--demo"}))

	cfg, err := NewViperConfigService(fs).Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.True(t, cfg.Demo)
	assert.Equal(t, 4, cfg.MinQueryLength)
	assert.Equal(t, 5, cfg.MaxRating)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 16, cfg.CacheSize)
}

func TestViperConfigService_OverridesAreNotWritten(t *testing.T) {
	dir := isolate(t)
	t.Setenv("POPCORN_LOGLEVEL", "debug")

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--api-key", "one-off-key"}))

	cfg, err := NewViperConfigService(fs).Load()
	require.NoError(t, err)
	assert.Equal(t, "one-off-key", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)

	written, err := os.ReadFile(filepath.Join(dir, "popcorn", "config.yml"))
	require.NoError(t, err)
	assert.NotContains(t, string(written), "one-off-key")
	assert.NotContains(t, string(written), "debug")
	assert.Contains(t, string(written), defaultAPIKey)
}
