package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  dsn: \"file::memory:\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Maintenance.Interval)
	assert.Equal(t, time.Hour, cfg.Maintenance.DailyWindow)
	assert.Equal(t, 30*time.Second, cfg.Maintenance.StoreTimeout)
	assert.Equal(t, "reports", cfg.Maintenance.ReportsDir)
	assert.Equal(t, "MonthlyReport", cfg.Maintenance.ReportKind)
	assert.NotNil(t, cfg.Maintenance.Location)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.Equal(t, 3600, cfg.Push.TTL)
}

func TestLoad_IntervalClampedToDailyWindow(t *testing.T) {
	body := `
maintenance:
  interval_seconds: 7200
  daily_window_minutes: 15
  timezone: UTC
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Maintenance.DailyWindow)
	assert.Equal(t, 7*time.Minute+30*time.Second, cfg.Maintenance.Interval)
	assert.Equal(t, time.UTC, cfg.Maintenance.Location)
}

func TestLoad_IntervalEqualToWindowIsClamped(t *testing.T) {
	body := `
maintenance:
  interval_seconds: 3600
  daily_window_minutes: 60
  timezone: UTC
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Less(t, cfg.Maintenance.Interval, cfg.Maintenance.DailyWindow)
	assert.Equal(t, 30*time.Minute, cfg.Maintenance.Interval)
}

func TestLoad_ShortIntervalKept(t *testing.T) {
	body := `
maintenance:
  interval_seconds: 600
  daily_window_minutes: 60
  timezone: UTC
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, cfg.Maintenance.Interval)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	_, err := Load(writeConfig(t, "maintenance:\n  timezone: Nowhere/Atlantis\n"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
