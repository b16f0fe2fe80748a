package history_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func TestNewPlanRecord(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	plan := &survey.SurveyPlan{SpeedPlan: &survey.SpeedPlan{Order: "Order 1a"}}
	dt := catalogue.ResolvedDeadTime{Value: 0.05, Source: catalogue.DeadTimeFromPreset}

	record, err := history.NewPlanRecord(now, "harbour approach", dt, "Mixed", plan)

	require.NoError(t, err)
	assert.False(t, record.ID().IsZero())
	assert.Equal(t, now, record.CreatedAt())
	assert.Equal(t, "harbour approach", record.Label())
	assert.Equal(t, "Order 1a", record.Order())
	assert.Equal(t, dt, record.DeadTime())
	assert.Same(t, plan, record.Plan())

	parsed, err := history.ParsePlanID(record.ID().String())
	require.NoError(t, err)
	assert.Equal(t, record.ID(), parsed)
}

func TestNewPlanRecord_RejectsEmptyPlan(t *testing.T) {
	_, err := history.NewPlanRecord(time.Now(), "", catalogue.ResolvedDeadTime{}, "", nil)

	var invalid *history.ErrInvalidPlan
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "plan", invalid.Field)
}

func TestParsePlanID_RejectsGarbage(t *testing.T) {
	_, err := history.ParsePlanID("")
	assert.Error(t, err)

	_, err = history.ParsePlanID("not-a-uuid")
	assert.ErrorContains(t, err, "invalid plan id format")
}
