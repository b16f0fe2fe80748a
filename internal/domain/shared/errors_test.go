package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

func TestKindOf_SeesThroughWrapping(t *testing.T) {
	base := shared.NewInputRangeError("depth", -1, "depth must be positive")
	wrapped := fmt.Errorf("calculate speed plan: %w", base)

	assert.Equal(t, shared.KindInputRange, shared.KindOf(wrapped))
	assert.True(t, shared.IsEngineError(wrapped))

	var rangeErr *shared.InputRangeError
	require.True(t, errors.As(wrapped, &rangeErr))
	assert.Equal(t, "depth", rangeErr.Field)
	assert.Equal(t, -1.0, rangeErr.Value)
}

func TestKindOf_Kinds(t *testing.T) {
	assert.Equal(t, shared.KindGeometry, shared.KindOf(shared.NewGeometryError(90)))
	assert.Equal(t, shared.KindComputation, shared.KindOf(shared.NewComputationError("max_speed", "x")))
	assert.Equal(t, shared.KindPlannerInput, shared.KindOf(shared.NewPlannerInputError("area_width", "x")))
	assert.Equal(t, shared.KindUnknown, shared.KindOf(errors.New("boom")))
	assert.Equal(t, shared.ErrorKind(""), shared.KindOf(nil))
	assert.False(t, shared.IsEngineError(errors.New("boom")))
}

func TestEngineError_Message(t *testing.T) {
	err := shared.NewPlannerInputError("daily_hours", "daily working hours must be positive")
	assert.Equal(t, "daily_hours: daily working hours must be positive", err.Error())

	geom := shared.NewGeometryError(90)
	assert.Contains(t, geom.Error(), "swath_angle")
	assert.Contains(t, geom.Error(), "90.000")
}
