package catalogue_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mbes-planner/internal/adapters/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

const sampleCatalogue = `
sonars:
  - name: Fleet EM2040
    dead_time_s: 0.045
  - name: Towed sidescan
  - name: Zero gap
    dead_time_s: 0
orders:
  - name: Harbour
    aliases: [port]
    default_coverage_pct: 150
    tvu: {a: 0.2, b: 0.005}
    detection: {minimum_m: 0.75}
  - name: Recon
    default_coverage_pct: 100
bottom_types:
  - name: Silt
    factor: 1.0
  - name: Reef
    factor: 0.6
`

func TestLoad_ConvertsMissingFieldsToAbsent(t *testing.T) {
	// Act
	cat, err := catalogue.Load(strings.NewReader(sampleCatalogue))

	// Assert
	require.NoError(t, err)

	fleet, err := cat.Sonar("fleet em2040")
	require.NoError(t, err)
	assert.Equal(t, 0.045, fleet.DeadTime.OrElse(-1))

	towed, err := cat.Sonar("Towed sidescan")
	require.NoError(t, err)
	assert.False(t, towed.DeadTime.IsPresent())

	zero, err := cat.Sonar("Zero gap")
	require.NoError(t, err)
	assert.True(t, zero.DeadTime.IsPresent())

	harbour, err := cat.Order("PORT")
	require.NoError(t, err)
	assert.Equal(t, "Harbour", harbour.Name)
	assert.True(t, harbour.TVU.IsPresent())
	rule, ok := harbour.Detection.Get()
	require.True(t, ok)
	assert.Equal(t, 0.75, rule.Minimum)

	recon, err := cat.Order("Recon")
	require.NoError(t, err)
	assert.False(t, recon.TVU.IsPresent())
	assert.False(t, recon.Detection.IsPresent())

	reef, err := cat.BottomType("reef")
	require.NoError(t, err)
	assert.Equal(t, 0.6, reef.Factor)

	_, err = cat.Order("Order 1a")
	assert.Equal(t, shared.KindInputRange, shared.KindOf(err))
}

func TestLoad_RejectsUnknownKeysAndInvalidPresets(t *testing.T) {
	_, err := catalogue.Load(strings.NewReader("sonars:\n  - name: A\n    deadtime: 1\n"))
	assert.Error(t, err)

	_, err = catalogue.Load(strings.NewReader("bottom_types:\n  - name: Ice\n    factor: 0\n"))
	assert.ErrorContains(t, err, "Ice")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalogue), 0o600))

	cat, err := catalogue.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cat.Sonars(), 3)

	_, err = catalogue.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open catalogue file")
}
