package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "{}\n"))

	require.NoError(t, err)
	assert.Equal(t, 0.80, cfg.Engine.SafetyFactor)
	assert.True(t, cfg.Engine.EnforceMinimumFullCoverage)
	assert.Equal(t, 4, cfg.Engine.SweepWorkers)
	assert.Equal(t, 12.0, cfg.Planner.DailyHours)
	assert.Equal(t, 20.0, cfg.Planner.WeatherPct)
	assert.Equal(t, 15.0, cfg.Planner.OverheadPct)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "mbesplan.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_ZeroAndFalseAreKept(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, `
engine:
  enforce_minimum_full_coverage: false
  turning_margin: 5
planner:
  weather_pct: 0
  overhead_pct: 0
metrics:
  enabled: false
`))

	require.NoError(t, err)
	assert.False(t, cfg.Engine.EnforceMinimumFullCoverage)
	assert.Equal(t, 5.0, cfg.Engine.TurningMargin)
	assert.Equal(t, 0.0, cfg.Planner.WeatherPct)
	assert.Equal(t, 0.0, cfg.Planner.OverheadPct)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("MBES_ENGINE_SAFETY_FACTOR", "0.6")
	t.Setenv("MBES_SERVER_PORT", "9191")

	cfg, err := config.LoadConfig(writeConfig(t, "engine:\n  safety_factor: 0.9\n"))

	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Engine.SafetyFactor)
	assert.Equal(t, 9191, cfg.Server.Port)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"safety factor":   "engine:\n  safety_factor: 1.5\n",
		"turning margin":  "engine:\n  turning_margin: 12\n",
		"daily hours":     "planner:\n  daily_hours: 30\n",
		"negative wx":     "planner:\n  weather_pct: -1\n",
		"database type":   "database:\n  type: oracle\n",
		"log file":        "logging:\n  output: file\n",
		"missing catalog": "engine:\n  catalogue_path: /does/not/exist.yaml\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestValidator_UsesConfigurationNames(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Engine.SweepWorkers = 0

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.sweep_workers")
	assert.Contains(t, err.Error(), "min=1")
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := config.NewDefaultConfig()

	assert.NoError(t, config.ValidateConfig(cfg))
	assert.True(t, cfg.Engine.EnforceMinimumFullCoverage)
}

func TestDatabaseConfig_PostgresDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Type:     "postgres",
		Host:     "db",
		Port:     5432,
		User:     "survey",
		Password: "secret",
		Name:     "mbesplan",
		SSLMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=survey password=secret dbname=mbesplan sslmode=disable", cfg.PostgresDSN())
	assert.False(t, cfg.InMemory())

	cfg.URL = "postgresql://survey:secret@db:5432/mbesplan"
	assert.Equal(t, cfg.URL, cfg.PostgresDSN())
}

func TestDatabaseConfig_InMemory(t *testing.T) {
	assert.True(t, config.DatabaseConfig{Type: "sqlite"}.InMemory())
	assert.True(t, config.DatabaseConfig{Type: "sqlite", Path: ":memory:"}.InMemory())
	assert.False(t, config.DatabaseConfig{Type: "sqlite", Path: "plans.db"}.InMemory())
}

func TestLoggingConfig_Rotates(t *testing.T) {
	cfg := config.LoggingConfig{Output: "stderr", Rotation: config.RotationConfig{Enabled: true}}
	assert.False(t, cfg.Rotates())

	cfg.Output = "file"
	assert.True(t, cfg.Rotates())
}
