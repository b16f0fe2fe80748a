package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func referenceSpeedPlan(t *testing.T) *planning.SpeedPlanResponse {
	t.Helper()
	calc := planning.NewCalculator(nil, planning.DefaultEngineDefaults(), nil)
	resp, err := calc.Calculate(planning.PlanRequest{
		Depth:      100,
		SwathAngle: 120,
		BeamWidth:  1.5,
		SoundSpeed: 1500,
		Sonar:      "Teledyne/Simrad Shelf MBES",
		Order:      "Order 1a",
		Coverage:   shared.Some(200.0),
	})
	require.NoError(t, err)
	return resp
}

func TestWriteSpeedReport_StepByStep(t *testing.T) {
	var buf bytes.Buffer

	writeSpeedReport(&buf, referenceSpeedPlan(t))

	out := buf.String()
	for _, want := range []string{
		"Max Speed:        3.570 m/s (6.94 knots)",
		"Advance per Ping: 50.0% of footprint",
		"=== INPUTS ===",
		"Total swath = 120.000° (±60.000°)",
		"Sonar system = Teledyne/Simrad Shelf MBES",
		"Dead-time mode = AUTO (preset)",
		"Dead time Δt = 0.100 s",
		"=== STEP 1 — Slant range to outer beam ===",
		"  = 200.000 m",
		"       = 0.267 s",
		"  = 0.367 s",
		"  = 2.618 m",
		"  = 0.500 × 2.618",
		"  = 1.309 m",
		"  = 6.940 knots",
		"Survey order = Order 1a",
		"TVU at 100.0 m = ±1.393 m",
		"Feature detection = FAIL",
		"FINAL RESULT:\nMax vessel speed ≈ 3.570 m/s ≈ 6.94 knots",
		"Warnings:",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteSurveyReport_Aggregates(t *testing.T) {
	speed := referenceSpeedPlan(t)
	area := planning.DefaultPlannerDefaults().Area(planning.AreaRequest{
		Length:       5000,
		Width:        2000,
		FuelBurnRate: shared.Some(40.0),
		FuelPrice:    shared.Some(1.5),
	})
	plan, err := survey.PlanSurvey(speed.Plan, area)
	require.NoError(t, err)

	var buf bytes.Buffer
	writeSurveyReport(&buf, &planning.SurveyPlanResponse{
		Plan:       plan,
		DeadTime:   speed.DeadTime,
		BottomType: speed.BottomType,
		PlanID:     "abc",
	})

	out := buf.String()
	assert.Contains(t, out, "=== SURVEY PLAN ===")
	assert.Contains(t, out, "Survey lines = 12 at 173.2 m spacing")
	assert.Contains(t, out, "Fuel = ")
	assert.Contains(t, out, "Saved as plan abc")
}
