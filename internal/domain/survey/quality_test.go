package survey_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

func order1a() survey.Order {
	return survey.Order{
		Name: "Order 1a",
		TVU:  shared.Some(survey.TVUCoefficients{A: 0.5, B: 0.013}),
		Detection: shared.Some(survey.DetectionRule{
			Minimum:       2.0,
			DepthLimit:    40,
			DepthFraction: 0.10,
		}),
	}
}

func TestDetectionLimit_QuarterOfCellDiagonal(t *testing.T) {
	limit := survey.DetectionLimit(10, 10)

	assert.InDelta(t, 3.5355, limit, 1e-4)
	assert.Equal(t, survey.DetectionPass, survey.CompareDetection(limit, shared.Some(4.0)))
	assert.Equal(t, survey.DetectionFail, survey.CompareDetection(limit, shared.Some(3.0)))
	assert.Equal(t, survey.DetectionNotApplicable, survey.CompareDetection(limit, shared.None[float64]()))
}

func TestDetectionRule_SwitchesToDepthFractionBeyondLimit(t *testing.T) {
	rule, _ := order1a().Detection.Get()

	assert.Equal(t, 2.0, rule.Requirement(15))
	assert.Equal(t, 2.0, rule.Requirement(40))
	assert.InDelta(t, 10.0, rule.Requirement(100), 1e-12)
}

func TestCheckDetection_BottomFactorTightensRequirement(t *testing.T) {
	// Arrange
	order := survey.Order{
		Name:      "Special",
		Detection: shared.Some(survey.DetectionRule{Minimum: 4.0}),
	}

	// Act
	smooth, err := survey.CheckDetection(order, 20, 10, 10, 1.0)
	require.NoError(t, err)
	rocky, err := survey.CheckDetection(order, 20, 10, 10, 0.7)
	require.NoError(t, err)

	// Assert
	assert.True(t, smooth.Compliant())
	assert.Equal(t, 4.0, smooth.Requirement.OrElse(0))

	assert.False(t, rocky.Compliant())
	assert.Equal(t, survey.DetectionFail, rocky.Status)
	assert.Equal(t, 4.0, rocky.BaseRequirement.OrElse(0))
	assert.InDelta(t, 2.8, rocky.Requirement.OrElse(0), 1e-12)
	assert.Contains(t, rocky.Advice, "exceeds")
}

func TestCheckDetection_NoRuleIsNotApplicable(t *testing.T) {
	order := survey.Order{Name: "Order 2"}

	check, err := survey.CheckDetection(order, 50, 1, 100, 1.0)

	require.NoError(t, err)
	assert.Equal(t, survey.DetectionNotApplicable, check.Status)
	assert.False(t, check.Requirement.IsPresent())
	assert.False(t, check.BaseRequirement.IsPresent())
	assert.Contains(t, check.Advice, "Order 2")
}

func TestCheckDetection_RejectsBottomFactorOutOfRange(t *testing.T) {
	for _, f := range []float64{0, -0.5, 1.01, math.NaN()} {
		_, err := survey.CheckDetection(order1a(), 10, 1, 1, f)
		assert.Equal(t, shared.KindInputRange, shared.KindOf(err), "factor %v", f)
	}
}

func TestTVUAt(t *testing.T) {
	tvu := survey.TVUAt(order1a(), 100)
	v, ok := tvu.Get()
	require.True(t, ok)
	assert.InDelta(t, 1.3936, v, 1e-3)
	assert.InDelta(t, math.Sqrt(1.94), v, 1e-9)

	absent := survey.TVUAt(survey.Order{Name: "Custom"}, 100)
	assert.False(t, absent.IsPresent())
}
