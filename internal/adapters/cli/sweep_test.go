package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSweepFile_MergesBase(t *testing.T) {
	scenarios, err := loadSweepFile(strings.NewReader(`
base:
  depth_m: 50
  swath_angle_deg: 120
  beam_width_deg: 1
  sound_speed_m_s: 1500
  dead_time_s: 0.05
  enforce_minimum_full_coverage: false
scenarios:
  - name: base
  - name: deeper
    depth_m: 80
    coverage_pct: 50
`))

	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	assert.Equal(t, 50.0, scenarios[0].Request.Depth)
	assert.False(t, scenarios[0].Request.Coverage.IsPresent())
	assert.Equal(t, 80.0, scenarios[1].Request.Depth)
	assert.Equal(t, 120.0, scenarios[1].Request.SwathAngle)

	coverage, ok := scenarios[1].Request.Coverage.Get()
	require.True(t, ok)
	assert.Equal(t, 50.0, coverage)

	enforce, ok := scenarios[1].Request.EnforceMinimumFullCoverage.Get()
	require.True(t, ok)
	assert.False(t, enforce)

	deadTime, _ := scenarios[1].Request.DeadTime.Get()
	assert.Equal(t, 0.05, deadTime)
}

func TestLoadSweepFile_Errors(t *testing.T) {
	_, err := loadSweepFile(strings.NewReader("base:\n  depth: 10\nscenarios:\n  - name: a\n"))
	assert.ErrorContains(t, err, "failed to parse sweep file")

	_, err = loadSweepFile(strings.NewReader("base:\n  depth_m: 10\n"))
	assert.ErrorContains(t, err, "no scenarios")
}
