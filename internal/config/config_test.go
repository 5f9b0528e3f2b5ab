package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rangecal/internal/config"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoadNormalizes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale: ar-EG
log_level: verbose
weekday_labels: [a, b, c]
session_idle_minutes: 0
session_sweep: "every now and then"
basic_auth:
  username: admin
  password: ""
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "ar-EG", cfg.Locale)
	require.Equal(t, "127.0.0.1:8080", cfg.Listen)
	require.Equal(t, "info", cfg.LogLevel)
	require.Nil(t, cfg.WeekdayLabels)
	require.Equal(t, 30*time.Minute, cfg.SessionIdle())
	require.Equal(t, "*/5 * * * *", cfg.SessionSweep)
	require.Nil(t, cfg.BasicAuth)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unterminated"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)

	_, err = config.Load("")
	require.Error(t, err)
}

func TestLabels(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	_, ok := cfg.Labels()
	require.False(t, ok)

	cfg.WeekdayLabels = []string{"Lu", "Ma", "Me", "Je", "Ve", "Sa", "Di"}
	labels, ok := cfg.Labels()
	require.True(t, ok)
	require.Equal(t, [7]string{"Lu", "Ma", "Me", "Je", "Ve", "Sa", "Di"}, labels)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Locale = "he-IL"
	cfg.BasicAuth = &config.BasicAuthConfig{Username: "u", Password: "p"}
	require.NoError(t, cfg.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
