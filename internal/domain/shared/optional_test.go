package shared_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

func TestOptional_ZeroIsAValidValue(t *testing.T) {
	zero := shared.Some(0.0)

	v, ok := zero.Get()
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, 0.0, zero.OrElse(42))
	assert.Equal(t, 42.0, shared.None[float64]().OrElse(42))
}

func TestOptional_PointerRoundTrip(t *testing.T) {
	v := 0.05

	assert.False(t, shared.FromPtr[float64](nil).IsPresent())
	assert.Nil(t, shared.None[float64]().Ptr())

	opt := shared.FromPtr(&v)
	require.True(t, opt.IsPresent())
	p := opt.Ptr()
	require.NotNil(t, p)
	*p = 1
	assert.Equal(t, 0.05, opt.OrElse(0), "Ptr must return a copy")
}

func TestOptional_JSON(t *testing.T) {
	type payload struct {
		DeadTime shared.Optional[float64] `json:"dead_time"`
		Other    shared.Optional[float64] `json:"other"`
	}

	out, err := json.Marshal(payload{DeadTime: shared.Some(0.1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dead_time": 0.1, "other": null}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"dead_time": null, "other": 0}`), &in))
	assert.False(t, in.DeadTime.IsPresent())
	assert.True(t, in.Other.IsPresent())
	assert.Equal(t, "absent", in.DeadTime.String())
}
