package survey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func referenceRequest() survey.Request {
	return survey.Request{
		Inputs: survey.SurveyInputs{
			Depth:      100,
			SwathAngle: 120,
			BeamWidth:  1.5,
			SoundSpeed: 1500,
			DeadTime:   0.10,
		},
		Coverage:     survey.CoverageSpec{Requested: 200, EnforceMinimumFullCoverage: true},
		Order:        order1a(),
		BottomFactor: 1.0,
		SafetyFactor: survey.DefaultSafetyFactor,
	}
}

func TestCalculateSpeedPlan_ReferenceScenario(t *testing.T) {
	// Arrange
	req := referenceRequest()

	// Act
	plan, err := survey.CalculateSpeedPlan(req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Order 1a", plan.Order)
	assert.InDelta(t, 0.36667, plan.Timing.Interval, 1e-5)
	assert.InDelta(t, 2.61814, plan.Footprint, 1e-5)
	assert.InDelta(t, 346.41, plan.SwathWidth, 1e-2)
	assert.InDelta(t, 1.30907, plan.Coverage.AlongStep, 1e-5)
	assert.InDelta(t, 173.205, plan.Coverage.LineSpacing, 1e-3)
	assert.InDelta(t, 50.0, plan.Coverage.OverlapPercent, 1e-9)

	assert.InDelta(t, 3.570, plan.Speeds.Max.MetresPerSecond, 1e-3)
	assert.InDelta(t, 6.94, plan.Speeds.Max.Knots, 1e-2)
	assert.InDelta(t, plan.Speeds.Max.MetresPerSecond*0.8, plan.Speeds.Optimum.MetresPerSecond, 1e-12)
	assert.InDelta(t, plan.Speeds.Optimum.MetresPerSecond/2, plan.Speeds.Minimum.MetresPerSecond, 1e-12)

	tvu, ok := plan.TVU.Get()
	require.True(t, ok)
	assert.InDelta(t, 1.3936, tvu, 1e-3)

	// 173 m lines cannot resolve a 10 m cube; the check is advisory only
	assert.Equal(t, survey.DetectionFail, plan.Detection.Status)
	assert.InDelta(t, 10.0, plan.Detection.Requirement.OrElse(0), 1e-12)
}

func TestCalculateSpeedPlan_DoesNotMutateInputs(t *testing.T) {
	req := referenceRequest()
	before := req.Inputs

	plan, err := survey.CalculateSpeedPlan(req)

	require.NoError(t, err)
	assert.Equal(t, before, req.Inputs)
	assert.Equal(t, before, plan.Inputs)
}

func TestCalculateSpeedPlan_FailsFast(t *testing.T) {
	cases := map[string]struct {
		mutate func(r *survey.Request)
		kind   shared.ErrorKind
	}{
		"zero depth": {
			mutate: func(r *survey.Request) { r.Inputs.Depth = 0 },
			kind:   shared.KindInputRange,
		},
		"swath of 180": {
			mutate: func(r *survey.Request) { r.Inputs.SwathAngle = 180 },
			kind:   shared.KindGeometry,
		},
		"coverage below 100 under enforcement": {
			mutate: func(r *survey.Request) { r.Coverage.Requested = 50 },
			kind:   shared.KindInputRange,
		},
		"zero beam width": {
			mutate: func(r *survey.Request) { r.Inputs.BeamWidth = 0 },
			kind:   shared.KindInputRange,
		},
		"safety factor too low": {
			mutate: func(r *survey.Request) { r.SafetyFactor = 0.2 },
			kind:   shared.KindInputRange,
		},
		"zero bottom factor": {
			mutate: func(r *survey.Request) { r.BottomFactor = 0 },
			kind:   shared.KindInputRange,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := referenceRequest()
			tc.mutate(&req)

			plan, err := survey.CalculateSpeedPlan(req)

			assert.Nil(t, plan)
			require.Error(t, err)
			assert.Equal(t, tc.kind, shared.KindOf(err))
		})
	}
}
