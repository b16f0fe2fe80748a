package survey_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func tenKnots() survey.Speed {
	return survey.NewSpeed(10 / shared.KnotsPerMetrePerSecond)
}

func TestEstimateSurvey_ReferenceArea(t *testing.T) {
	// Arrange
	in := survey.PlannerInputs{
		AreaLength:  5000,
		AreaWidth:   2000,
		DailyHours:  12,
		WeatherPct:  20,
		OverheadPct: 15,
	}

	// Act
	est, err := survey.EstimateSurvey(in, 100, tenKnots())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, est.LineCount)
	assert.InDelta(t, 100.0, est.TotalTrackKm, 1e-9)
	assert.InDelta(t, 5.39957, est.SailingHours, 1e-5)
	assert.InDelta(t, 7.45140, est.EffectiveHours, 1e-5)
	assert.InDelta(t, 0.62095, est.Days, 1e-5)
	assert.InDelta(t, est.SailingHours*0.15, est.OverheadHours, 1e-9)
	assert.False(t, est.FuelVolume.IsPresent())
	assert.False(t, est.FuelCost.IsPresent())
}

func TestEstimateSurvey_AtLeastOneLine(t *testing.T) {
	in := survey.PlannerInputs{AreaLength: 1000, AreaWidth: 10, DailyHours: 8}

	est, err := survey.EstimateSurvey(in, 500, tenKnots())

	require.NoError(t, err)
	assert.Equal(t, 1, est.LineCount)
}

func TestEstimateSurvey_FuelAndCost(t *testing.T) {
	in := survey.PlannerInputs{
		AreaLength:   5000,
		AreaWidth:    2000,
		DailyHours:   12,
		FuelBurnRate: 50,
	}

	est, err := survey.EstimateSurvey(in, 100, tenKnots())
	require.NoError(t, err)

	volume, ok := est.FuelVolume.Get()
	require.True(t, ok)
	assert.InDelta(t, 50*est.EffectiveHours, volume, 1e-9)
	assert.False(t, est.FuelCost.IsPresent())

	in.FuelPrice = 1.5
	est, err = survey.EstimateSurvey(in, 100, tenKnots())
	require.NoError(t, err)
	assert.InDelta(t, volume*1.5, est.FuelCost.OrElse(0), 1e-9)
}

func TestEstimateSurvey_RejectsInvalidInputs(t *testing.T) {
	valid := survey.PlannerInputs{AreaLength: 1000, AreaWidth: 1000, DailyHours: 12}

	cases := map[string]func(p *survey.PlannerInputs){
		"zero length":       func(p *survey.PlannerInputs) { p.AreaLength = 0 },
		"negative width":    func(p *survey.PlannerInputs) { p.AreaWidth = -1 },
		"zero daily hours":  func(p *survey.PlannerInputs) { p.DailyHours = 0 },
		"over 24 hours":     func(p *survey.PlannerInputs) { p.DailyHours = 25 },
		"negative weather":  func(p *survey.PlannerInputs) { p.WeatherPct = -5 },
		"negative overhead": func(p *survey.PlannerInputs) { p.OverheadPct = -1 },
		"negative fuel":     func(p *survey.PlannerInputs) { p.FuelBurnRate = -2 },
		"negative price":    func(p *survey.PlannerInputs) { p.FuelPrice = -0.1 },
		"infinite length":   func(p *survey.PlannerInputs) { p.AreaLength = math.Inf(1) },
		"NaN width":         func(p *survey.PlannerInputs) { p.AreaWidth = math.NaN() },
		"infinite weather":  func(p *survey.PlannerInputs) { p.WeatherPct = math.Inf(1) },
		"infinite overhead": func(p *survey.PlannerInputs) { p.OverheadPct = math.Inf(1) },
		"infinite fuel":     func(p *survey.PlannerInputs) { p.FuelBurnRate = math.Inf(1) },
		"infinite price":    func(p *survey.PlannerInputs) { p.FuelPrice = math.Inf(1) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)

			_, err := survey.EstimateSurvey(in, 100, tenKnots())

			assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))
		})
	}
}

func TestEstimateSurvey_RejectsLineCountBeyondRange(t *testing.T) {
	// Arrange
	in := survey.PlannerInputs{AreaLength: 5000, AreaWidth: 1e300, DailyHours: 12}

	// Act
	est, err := survey.EstimateSurvey(in, 100, survey.NewSpeed(5))

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))
	assert.ErrorContains(t, err, "area_width")
	assert.Zero(t, est.LineCount)
}

func TestEstimateSurvey_RejectsOverflowingTrack(t *testing.T) {
	// Arrange
	in := survey.PlannerInputs{AreaLength: 1e308, AreaWidth: 2000, DailyHours: 12}

	// Act
	_, err := survey.EstimateSurvey(in, 100, tenKnots())

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))
}

func TestEstimateSurvey_RejectsOverflowingFuelCost(t *testing.T) {
	// Arrange
	in := survey.PlannerInputs{
		AreaLength:   5000,
		AreaWidth:    2000,
		DailyHours:   12,
		FuelBurnRate: 1e300,
		FuelPrice:    1e300,
	}

	// Act
	_, err := survey.EstimateSurvey(in, 100, tenKnots())

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))
	assert.ErrorContains(t, err, "fuel")
}

func TestPlanSurvey_UsesSelectedSpeedTier(t *testing.T) {
	// Arrange
	plan, err := survey.CalculateSpeedPlan(referenceRequest())
	require.NoError(t, err)
	area := survey.PlannerInputs{AreaLength: 5000, AreaWidth: 2000, DailyHours: 12}

	// Act
	optimum, err := survey.PlanSurvey(plan, area)
	require.NoError(t, err)
	area.SpeedTier = survey.SpeedTierMinimum
	minimum, err := survey.PlanSurvey(plan, area)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, survey.SpeedTierOptimum, optimum.Area.SpeedTier)
	assert.Equal(t, plan.Speeds.Optimum, optimum.Estimate.PlanningSpeed)
	assert.Equal(t, 12, optimum.Estimate.LineCount)
	assert.InDelta(t, optimum.Estimate.SailingHours*2, minimum.Estimate.SailingHours, 1e-9)
	assert.Same(t, plan, optimum.SpeedPlan)
}

func TestPlanSurvey_RejectsUnknownTierAndMissingPlan(t *testing.T) {
	plan, err := survey.CalculateSpeedPlan(referenceRequest())
	require.NoError(t, err)

	_, err = survey.PlanSurvey(plan, survey.PlannerInputs{
		AreaLength: 1, AreaWidth: 1, DailyHours: 1, SpeedTier: "cruise",
	})
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))

	_, err = survey.PlanSurvey(nil, survey.PlannerInputs{AreaLength: 1, AreaWidth: 1, DailyHours: 1})
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(err))
}
