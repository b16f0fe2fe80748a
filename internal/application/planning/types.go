// Package planning holds the commands and queries that turn named presets and
// raw survey inputs into speed plans and survey plans.
package planning

import (
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// PlanRequest is one speed calculation as a caller describes it: raw inputs
// plus preset names. Absent optional fields fall back to the order preset or
// the engine defaults.
type PlanRequest struct {
	Depth      float64 `json:"depth_m"`
	SwathAngle float64 `json:"swath_angle_deg"`
	BeamWidth  float64 `json:"beam_width_deg"`
	SoundSpeed float64 `json:"sound_speed_m_s"`

	Sonar    string                   `json:"sonar,omitempty"`
	DeadTime shared.Optional[float64] `json:"dead_time_s"`

	Order                      string                   `json:"order,omitempty"`
	Coverage                   shared.Optional[float64] `json:"coverage_pct"`
	TurningMargin              shared.Optional[float64] `json:"turning_margin_pct"`
	EnforceMinimumFullCoverage shared.Optional[bool]    `json:"enforce_minimum_full_coverage"`

	BottomType   string                   `json:"bottom_type,omitempty"`
	SafetyFactor shared.Optional[float64] `json:"safety_factor"`
}

// AreaRequest describes the area and operations for planner mode. Absent
// allowances fall back to the planner defaults.
type AreaRequest struct {
	Length       float64                  `json:"area_length_m"`
	Width        float64                  `json:"area_width_m"`
	DailyHours   shared.Optional[float64] `json:"daily_hours"`
	WeatherPct   shared.Optional[float64] `json:"weather_pct"`
	OverheadPct  shared.Optional[float64] `json:"overhead_pct"`
	FuelBurnRate shared.Optional[float64] `json:"fuel_burn_rate_l_h"`
	FuelPrice    shared.Optional[float64] `json:"fuel_price"`
	SpeedTier    string                   `json:"speed_tier,omitempty"`
}

// EngineDefaults are the configured fallbacks for a PlanRequest
type EngineDefaults struct {
	SafetyFactor               float64
	EnforceMinimumFullCoverage bool
	TurningMargin              float64
}

// DefaultEngineDefaults returns the canonical engine settings
func DefaultEngineDefaults() EngineDefaults {
	return EngineDefaults{
		SafetyFactor:               survey.DefaultSafetyFactor,
		EnforceMinimumFullCoverage: true,
	}
}

// PlannerDefaults are the configured fallbacks for an AreaRequest
type PlannerDefaults struct {
	DailyHours  float64
	WeatherPct  float64
	OverheadPct float64
	FuelPrice   float64
}

// DefaultPlannerDefaults returns typical operating allowances
func DefaultPlannerDefaults() PlannerDefaults {
	return PlannerDefaults{
		DailyHours:  12,
		WeatherPct:  20,
		OverheadPct: 15,
	}
}

// SpeedPlanResponse is the result of CalculateSpeedPlanCommand
type SpeedPlanResponse struct {
	Plan       *survey.SpeedPlan          `json:"plan"`
	DeadTime   catalogue.ResolvedDeadTime `json:"dead_time"`
	BottomType catalogue.BottomType       `json:"bottom_type"`
	Warnings   []string                   `json:"warnings"`
}

// SurveyPlanResponse is the result of PlanSurveyCommand. PlanID is set when
// the plan was saved.
type SurveyPlanResponse struct {
	Plan       *survey.SurveyPlan         `json:"plan"`
	DeadTime   catalogue.ResolvedDeadTime `json:"dead_time"`
	BottomType catalogue.BottomType       `json:"bottom_type"`
	Warnings   []string                   `json:"warnings"`
	PlanID     string                     `json:"plan_id,omitempty"`
}

// ErrorInfo is a serialisable engine error
type ErrorInfo struct {
	Kind    shared.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// NewErrorInfo classifies err
func NewErrorInfo(err error) *ErrorInfo {
	return &ErrorInfo{Kind: shared.KindOf(err), Message: err.Error()}
}
