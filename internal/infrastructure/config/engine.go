package config

// EngineConfig holds the calculation defaults applied when a request leaves
// a setting out
type EngineConfig struct {
	// Optimum speed as a fraction of the maximum speed
	SafetyFactor float64 `mapstructure:"safety_factor" validate:"gte=0.4,lte=1"`

	// Reject coverage below 100 % and never plan below it
	EnforceMinimumFullCoverage bool `mapstructure:"enforce_minimum_full_coverage"`

	// Percentage points subtracted from requested coverage
	TurningMargin float64 `mapstructure:"turning_margin" validate:"gte=0,lte=10"`

	// Concurrent scenario evaluations in a sweep
	SweepWorkers int `mapstructure:"sweep_workers" validate:"min=1,max=64"`

	// YAML preset catalogue; empty selects the built-in catalogue
	CataloguePath string `mapstructure:"catalogue_path" validate:"omitempty,file"`
}

// PlannerConfig holds the area planner allowances
type PlannerConfig struct {
	DailyHours  float64 `mapstructure:"daily_hours" validate:"gt=0,lte=24"`
	WeatherPct  float64 `mapstructure:"weather_pct" validate:"gte=0"`
	OverheadPct float64 `mapstructure:"overhead_pct" validate:"gte=0"`
	FuelPrice   float64 `mapstructure:"fuel_price" validate:"gte=0"`
}
