package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultSafetyFactor = 0.80
	DefaultSweepWorkers = 4
	DefaultDailyHours   = 12.0
	DefaultWeatherPct   = 20.0
	DefaultOverheadPct  = 15.0
)

func registerDefaults(v *viper.Viper) {
	v.SetDefault("engine.safety_factor", DefaultSafetyFactor)
	v.SetDefault("engine.enforce_minimum_full_coverage", true)
	v.SetDefault("engine.turning_margin", 0.0)
	v.SetDefault("planner.daily_hours", DefaultDailyHours)
	v.SetDefault("planner.weather_pct", DefaultWeatherPct)
	v.SetDefault("planner.overhead_pct", DefaultOverheadPct)
	v.SetDefault("planner.fuel_price", 0.0)
	v.SetDefault("metrics.enabled", true)

	// Registered so that MBES_* variables reach them without a config file
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "mbesplan.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

// NewDefaultConfig returns the configuration used when nothing is configured
func NewDefaultConfig() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			SafetyFactor:               DefaultSafetyFactor,
			EnforceMinimumFullCoverage: true,
		},
		Planner: PlannerConfig{
			DailyHours:  DefaultDailyHours,
			WeatherPct:  DefaultWeatherPct,
			OverheadPct: DefaultOverheadPct,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
	SetDefaults(cfg)
	return cfg
}

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Engine defaults
	if cfg.Engine.SafetyFactor == 0 {
		cfg.Engine.SafetyFactor = DefaultSafetyFactor
	}
	if cfg.Engine.SweepWorkers == 0 {
		cfg.Engine.SweepWorkers = DefaultSweepWorkers
	}

	// Planner defaults
	if cfg.Planner.DailyHours == 0 {
		cfg.Planner.DailyHours = DefaultDailyHours
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "mbesplan.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "mbesplan"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "mbesplan"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 20
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 40
	}
	if cfg.Server.MaxSweepScenarios == 0 {
		cfg.Server.MaxSweepScenarios = 500
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
