package survey

import (
	"fmt"
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// maxLineCount bounds the number of survey lines an area may need
const maxLineCount = math.MaxInt32

// PlannerInputs describes a rectangular survey area and how the vessel is
// operated over it. Lines run along AreaLength and are stacked across
// AreaWidth.
type PlannerInputs struct {
	AreaLength   float64   `json:"area_length_m"`
	AreaWidth    float64   `json:"area_width_m"`
	DailyHours   float64   `json:"daily_hours"`
	WeatherPct   float64   `json:"weather_pct"`
	OverheadPct  float64   `json:"overhead_pct"`
	FuelBurnRate float64   `json:"fuel_burn_rate_l_h"`
	FuelPrice    float64   `json:"fuel_price"`
	SpeedTier    SpeedTier `json:"speed_tier"`
}

// Validate checks the planner inputs
func (p PlannerInputs) Validate() error {
	if !(p.AreaLength > 0) || !shared.IsFinite(p.AreaLength) {
		return shared.NewPlannerInputError("area_length", "area length must be positive and finite")
	}
	if !(p.AreaWidth > 0) || !shared.IsFinite(p.AreaWidth) {
		return shared.NewPlannerInputError("area_width", "area width must be positive and finite")
	}
	if !(p.DailyHours > 0) {
		return shared.NewPlannerInputError("daily_hours", "daily working hours must be positive")
	}
	if p.DailyHours > 24 {
		return shared.NewPlannerInputError("daily_hours", "daily working hours cannot exceed 24")
	}
	if !(p.WeatherPct >= 0) || !shared.IsFinite(p.WeatherPct) {
		return shared.NewPlannerInputError("weather_pct", "weather allowance must be finite and non-negative")
	}
	if !(p.OverheadPct >= 0) || !shared.IsFinite(p.OverheadPct) {
		return shared.NewPlannerInputError("overhead_pct", "line-change overhead must be finite and non-negative")
	}
	if !(p.FuelBurnRate >= 0) || !shared.IsFinite(p.FuelBurnRate) {
		return shared.NewPlannerInputError("fuel_burn_rate", "fuel burn rate must be finite and non-negative")
	}
	if !(p.FuelPrice >= 0) || !shared.IsFinite(p.FuelPrice) {
		return shared.NewPlannerInputError("fuel_price", "fuel price must be finite and non-negative")
	}
	return nil
}

// SurveyEstimate holds the area-based aggregates of the planner stage
type SurveyEstimate struct {
	LineSpacing    float64                  `json:"line_spacing_m"`
	PlanningSpeed  Speed                    `json:"planning_speed"`
	LineCount      int                      `json:"line_count"`
	TotalTrackKm   float64                  `json:"total_track_km"`
	SailingHours   float64                  `json:"sailing_hours"`
	OverheadHours  float64                  `json:"overhead_hours"`
	EffectiveHours float64                  `json:"effective_hours"`
	Days           float64                  `json:"days"`
	FuelVolume     shared.Optional[float64] `json:"fuel_volume_l"`
	FuelCost       shared.Optional[float64] `json:"fuel_cost"`
}

// EstimateSurvey aggregates line count, sailing time, calendar days and fuel
// for an area surveyed at the given line spacing and speed.
//
// Overhead and weather allowances compound: overhead is applied to sailing
// time first, then weather to the result.
func EstimateSurvey(in PlannerInputs, lineSpacing float64, speed Speed) (SurveyEstimate, error) {
	if !(lineSpacing > 0) || !shared.IsFinite(lineSpacing) {
		return SurveyEstimate{}, shared.NewPlannerInputError("line_spacing", "line spacing must be positive and finite")
	}
	if !(speed.Knots > 0) || !shared.IsFinite(speed.Knots) {
		return SurveyEstimate{}, shared.NewPlannerInputError("speed", "survey speed must be positive and finite")
	}
	if err := in.Validate(); err != nil {
		return SurveyEstimate{}, err
	}

	n := math.Ceil(in.AreaWidth / lineSpacing)
	if !shared.IsFinite(n) || n > maxLineCount {
		return SurveyEstimate{}, shared.NewPlannerInputError("area_width",
			fmt.Sprintf("area width %v m needs more than %d lines at %v m spacing", in.AreaWidth, maxLineCount, lineSpacing))
	}
	lines := max(int(n), 1)

	trackKm := float64(lines) * in.AreaLength / 1000
	sailing := trackKm / (speed.Knots * shared.KilometresPerHourPerKnot)
	withOverhead := sailing * (1 + in.OverheadPct/100)
	effective := withOverhead * (1 + in.WeatherPct/100)
	days := effective / in.DailyHours
	if !shared.IsFinite(trackKm) || !shared.IsFinite(effective) || !shared.IsFinite(days) {
		return SurveyEstimate{}, shared.NewPlannerInputError("area",
			"survey track or duration overflows; reduce the area or the allowances")
	}

	est := SurveyEstimate{
		LineSpacing:    lineSpacing,
		PlanningSpeed:  speed,
		LineCount:      lines,
		TotalTrackKm:   trackKm,
		SailingHours:   sailing,
		OverheadHours:  withOverhead - sailing,
		EffectiveHours: effective,
		Days:           days,
	}

	if in.FuelBurnRate > 0 {
		volume := in.FuelBurnRate * effective
		if !shared.IsFinite(volume) {
			return SurveyEstimate{}, shared.NewPlannerInputError("fuel_burn_rate", "fuel volume overflows")
		}
		est.FuelVolume = shared.Some(volume)
		if in.FuelPrice > 0 {
			cost := volume * in.FuelPrice
			if !shared.IsFinite(cost) {
				return SurveyEstimate{}, shared.NewPlannerInputError("fuel_price", "fuel cost overflows")
			}
			est.FuelCost = shared.Some(cost)
		}
	}

	return est, nil
}

// SurveyPlan extends a SpeedPlan with area-based aggregates
type SurveyPlan struct {
	SpeedPlan *SpeedPlan     `json:"speed_plan"`
	Area      PlannerInputs  `json:"area"`
	Estimate  SurveyEstimate `json:"estimate"`
}

// PlanSurvey runs the planner stage on a computed speed plan. The speed plan
// is only read.
func PlanSurvey(plan *SpeedPlan, in PlannerInputs) (*SurveyPlan, error) {
	if plan == nil {
		return nil, shared.NewPlannerInputError("speed_plan", "a speed plan is required")
	}
	tier, err := ParseSpeedTier(string(in.SpeedTier))
	if err != nil {
		return nil, shared.NewPlannerInputError("speed_tier", err.Error())
	}
	in.SpeedTier = tier

	est, err := EstimateSurvey(in, plan.Coverage.LineSpacing, plan.Speeds.Tier(tier))
	if err != nil {
		return nil, err
	}

	return &SurveyPlan{
		SpeedPlan: plan,
		Area:      in,
		Estimate:  est,
	}, nil
}
