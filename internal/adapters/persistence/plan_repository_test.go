package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/adapters/persistence"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
	"github.com/andrescamacho/mbes-planner/test/helpers"
)

func buildRecord(t *testing.T, createdAt time.Time, label string, fuel float64) *history.PlanRecord {
	t.Helper()

	inputs, err := survey.NewSurveyInputs(100, 120, 1.5, 1500, 0.10)
	require.NoError(t, err)
	coverage, err := survey.NewCoverageSpec(200, 0, true)
	require.NoError(t, err)
	order, err := catalogue.Default().Order("Order 1a")
	require.NoError(t, err)

	speedPlan, err := survey.CalculateSpeedPlan(survey.Request{
		Inputs:       inputs,
		Coverage:     coverage,
		Order:        order.Standard(),
		BottomFactor: 1,
		SafetyFactor: survey.DefaultSafetyFactor,
	})
	require.NoError(t, err)

	plan, err := survey.PlanSurvey(speedPlan, survey.PlannerInputs{
		AreaLength:   5000,
		AreaWidth:    2000,
		DailyHours:   12,
		WeatherPct:   20,
		OverheadPct:  15,
		FuelBurnRate: fuel,
		FuelPrice:    1.5,
	})
	require.NoError(t, err)

	deadTime := catalogue.ResolvedDeadTime{Value: 0.10, Source: catalogue.DeadTimeFromPreset, Sonar: "Teledyne/Simrad Shelf MBES"}
	record, err := history.NewPlanRecord(createdAt, label, deadTime, catalogue.DefaultBottomName, plan)
	require.NoError(t, err)
	return record
}

func TestPlanRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlanRepository(db)
	createdAt := time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)
	record := buildRecord(t, createdAt, "approach channel", 40)

	// Act - Save
	err := repo.Save(context.Background(), record)

	// Assert
	require.NoError(t, err)

	// Act - FindByID
	found, err := repo.FindByID(context.Background(), record.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, record.ID(), found.ID())
	assert.True(t, createdAt.Equal(found.CreatedAt()))
	assert.Equal(t, "approach channel", found.Label())
	assert.Equal(t, "Order 1a", found.Order())
	assert.Equal(t, record.DeadTime(), found.DeadTime())
	assert.Equal(t, catalogue.DefaultBottomName, found.BottomType())

	want, got := record.Plan(), found.Plan()
	assert.Equal(t, want.Estimate.LineCount, got.Estimate.LineCount)
	assert.InDelta(t, want.Estimate.Days, got.Estimate.Days, 1e-9)
	assert.InDelta(t, want.SpeedPlan.Speeds.Max.Knots, got.SpeedPlan.Speeds.Max.Knots, 1e-9)
	assert.Equal(t, want.SpeedPlan.Detection.Status, got.SpeedPlan.Detection.Status)
	assert.Equal(t, want.SpeedPlan.TVU, got.SpeedPlan.TVU)
	assert.Equal(t, want.Estimate.FuelCost, got.Estimate.FuelCost)
}

func TestPlanRepository_FindByID_NotFound(t *testing.T) {
	repo := persistence.NewGormPlanRepository(helpers.NewTestDB(t))

	_, err := repo.FindByID(context.Background(), history.NewPlanID())

	var notFound *history.ErrPlanNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestPlanRepository_ListNewestFirst(t *testing.T) {
	// Arrange
	repo := persistence.NewGormPlanRepository(helpers.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, label := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Save(ctx, buildRecord(t, base.Add(time.Duration(i)*time.Hour), label, 0)))
	}

	// Act
	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Label())
	assert.Equal(t, "first", all[2].Label())
	assert.False(t, all[0].Plan().Estimate.FuelCost.IsPresent())

	require.Len(t, limited, 2)
	assert.Equal(t, "second", limited[1].Label())
}
