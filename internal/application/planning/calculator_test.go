package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func referenceRequest() planning.PlanRequest {
	return planning.PlanRequest{
		Depth:      100,
		SwathAngle: 120,
		BeamWidth:  1.5,
		SoundSpeed: 1500,
		Sonar:      "Teledyne/Simrad Shelf MBES",
		Order:      "Order 1a",
		Coverage:   shared.Some(200.0),
	}
}

type recordingObserver struct {
	plans []*survey.SpeedPlan
}

func (o *recordingObserver) ObserveSpeedPlan(plan *survey.SpeedPlan) {
	o.plans = append(o.plans, plan)
}

func TestCalculator_ResolvesPresetsAndRunsEngine(t *testing.T) {
	// Arrange
	observer := &recordingObserver{}
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), observer)

	// Act
	resp, err := calc.Calculate(referenceRequest())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, catalogue.DeadTimeFromPreset, resp.DeadTime.Source)
	assert.Equal(t, 0.10, resp.DeadTime.Value)
	assert.Equal(t, catalogue.DefaultBottomName, resp.BottomType.Name)
	assert.InDelta(t, 3.570, resp.Plan.Speeds.Max.MetresPerSecond, 1e-3)
	assert.Equal(t, survey.DefaultSafetyFactor, resp.Plan.Speeds.SafetyFactor)
	assert.Equal(t, survey.DetectionFail, resp.Plan.Detection.Status)
	assert.Contains(t, resp.Warnings, resp.Plan.Detection.Advice)
	assert.Len(t, observer.plans, 1)
}

func TestCalculator_ManualDeadTimeWins(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.EngineDefaults{EnforceMinimumFullCoverage: true}, nil)
	req := referenceRequest()
	req.DeadTime = shared.Some(0.25)

	resp, err := calc.Calculate(req)

	require.NoError(t, err)
	assert.Equal(t, catalogue.DeadTimeManual, resp.DeadTime.Source)
	assert.Equal(t, 0.25, resp.Plan.Inputs.DeadTime)
	assert.Contains(t, resp.Warnings[0], "overrides the 0.100 s preset")
}

func TestCalculator_SonarWithoutPresetNeedsManualDeadTime(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)
	req := referenceRequest()
	req.Sonar = catalogue.CustomSonarName

	_, err := calc.Calculate(req)
	assert.Equal(t, shared.KindInputRange, shared.KindOf(err))

	req.DeadTime = shared.Some(0.07)
	resp, err := calc.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 0.07, resp.DeadTime.Value)
}

func TestCalculator_OrderDefaultCoverage(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)

	req := referenceRequest()
	req.Order = "Exclusive Order"
	req.Coverage = shared.None[float64]()
	resp, err := calc.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Plan.Coverage.Requested)

	// Order 2 ships with 5 %, which the 100 % floor lifts
	req.Order = "IHO Order 2 (5% coverage)"
	resp, err = calc.Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resp.Plan.Coverage.Effective)
	assert.Contains(t, resp.Warnings[0], "below the 100% floor")
	assert.True(t, resp.Plan.TVU.IsPresent())
}

func TestCalculator_RelaxedPolicyAllowsLowCoverage(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)
	req := referenceRequest()
	req.Order = "Order 2"
	req.Coverage = shared.None[float64]()
	req.EnforceMinimumFullCoverage = shared.Some(false)

	resp, err := calc.Calculate(req)

	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Plan.Coverage.Effective)
	assert.Equal(t, 20.0, resp.Plan.Coverage.AdvanceFraction)
	assert.Equal(t, survey.DetectionNotApplicable, resp.Plan.Detection.Status)
}

func TestCalculator_ExplicitLowCoverageIsRejectedUnderFloor(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)
	req := referenceRequest()
	req.Coverage = shared.Some(50.0)

	_, err := calc.Calculate(req)

	assert.Equal(t, shared.KindInputRange, shared.KindOf(err))
}

func TestCalculator_UnknownNamesAreInputRangeErrors(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)

	for _, mutate := range []func(r *planning.PlanRequest){
		func(r *planning.PlanRequest) { r.Order = "Order 7" },
		func(r *planning.PlanRequest) { r.Sonar = "Sonar 9000" },
		func(r *planning.PlanRequest) { r.BottomType = "Glass" },
	} {
		req := referenceRequest()
		mutate(&req)
		_, err := calc.Calculate(req)
		assert.Equal(t, shared.KindInputRange, shared.KindOf(err))
	}
}

func TestCalculator_GeometryAndSafetyErrors(t *testing.T) {
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)

	req := referenceRequest()
	req.SwathAngle = 180
	_, err := calc.Calculate(req)
	assert.Equal(t, shared.KindGeometry, shared.KindOf(err))

	req = referenceRequest()
	req.SafetyFactor = shared.Some(0.0)
	_, err = calc.Calculate(req)
	assert.Equal(t, shared.KindInputRange, shared.KindOf(err))
}

func TestPlannerDefaults_Area(t *testing.T) {
	d := planning.DefaultPlannerDefaults()

	in := d.Area(planning.AreaRequest{
		Length:     5000,
		Width:      2000,
		WeatherPct: shared.Some(0.0),
		SpeedTier:  "max",
	})

	assert.Equal(t, 12.0, in.DailyHours)
	assert.Equal(t, 0.0, in.WeatherPct)
	assert.Equal(t, 15.0, in.OverheadPct)
	assert.Equal(t, survey.SpeedTierMax, in.SpeedTier)
}
