package survey

import (
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

const (
	// FullCoverage is S-44 100 % coverage: adjacent pings and swaths just touch
	FullCoverage = 100.0

	// MaxTurningMargin bounds the tolerance subtracted from requested coverage
	MaxTurningMargin = 10.0
)

// CoverageSpec is a requested S-44 style coverage percentage.
//
// With EnforceMinimumFullCoverage set, the effective coverage never drops
// below 100 % and requests under 100 % are rejected. Without it, any positive
// percentage is accepted and used as a plain advance multiplier, which is
// useful for exploratory what-if runs.
type CoverageSpec struct {
	Requested                  float64 `json:"requested_pct"`
	TurningMargin              float64 `json:"turning_margin_pct"`
	EnforceMinimumFullCoverage bool    `json:"enforce_minimum_full_coverage"`
}

// NewCoverageSpec creates a coverage spec with validation
func NewCoverageSpec(requested, turningMargin float64, enforceMinimumFullCoverage bool) (CoverageSpec, error) {
	c := CoverageSpec{
		Requested:                  requested,
		TurningMargin:              turningMargin,
		EnforceMinimumFullCoverage: enforceMinimumFullCoverage,
	}
	if err := c.Validate(); err != nil {
		return CoverageSpec{}, err
	}
	return c, nil
}

// Validate checks the requested coverage against the active policy
func (c CoverageSpec) Validate() error {
	if !(c.Requested > 0) || math.IsInf(c.Requested, 0) {
		return shared.NewInputRangeError("coverage", c.Requested, "coverage must be greater than 0%")
	}
	if !(c.TurningMargin >= 0 && c.TurningMargin <= MaxTurningMargin) {
		return shared.NewInputRangeError("turning_margin", c.TurningMargin, "turning margin must be between 0 and 10 percentage points")
	}
	if c.EnforceMinimumFullCoverage && c.Requested < FullCoverage {
		return shared.NewInputRangeError("coverage", c.Requested, "coverage below 100% is not a supported operating point")
	}
	if !c.EnforceMinimumFullCoverage && c.Requested-c.TurningMargin <= 0 {
		return shared.NewInputRangeError("coverage", c.Requested, "coverage minus turning margin must stay above 0%")
	}
	return nil
}

// Effective returns the coverage percentage the vessel is planned against
func (c CoverageSpec) Effective() float64 {
	eff := c.Requested - c.TurningMargin
	if c.EnforceMinimumFullCoverage {
		return math.Max(FullCoverage, eff)
	}
	return eff
}

// CoverageResult is the output of the coverage stage
type CoverageResult struct {
	Requested       float64 `json:"requested_pct"`
	Effective       float64 `json:"effective_pct"`
	AdvanceFraction float64 `json:"advance_fraction"`
	AdvancePercent  float64 `json:"advance_pct_of_footprint"`
	AlongStep       float64 `json:"along_step_m"`
	LineSpacing     float64 `json:"line_spacing_m"`
	OverlapFraction float64 `json:"overlap_fraction"`
	OverlapPercent  float64 `json:"overlap_pct"`
}

// ApplyCoverage converts a coverage spec into the allowed along-track advance
// per ping and the line spacing for the given footprint and swath width.
func ApplyCoverage(spec CoverageSpec, footprint, swathWidth float64) (CoverageResult, error) {
	if err := spec.Validate(); err != nil {
		return CoverageResult{}, err
	}
	if !(footprint > 0) {
		return CoverageResult{}, shared.NewInputRangeError("footprint", footprint, "along-track footprint must be positive")
	}
	if !(swathWidth > 0) {
		return CoverageResult{}, shared.NewInputRangeError("swath_width", swathWidth, "swath width must be positive")
	}

	eff := spec.Effective()
	fraction := FullCoverage / eff
	spacing := swathWidth * FullCoverage / eff
	overlap := math.Max(0, 1-spacing/swathWidth)

	return CoverageResult{
		Requested:       spec.Requested,
		Effective:       eff,
		AdvanceFraction: fraction,
		AdvancePercent:  fraction * 100,
		AlongStep:       fraction * footprint,
		LineSpacing:     spacing,
		OverlapFraction: overlap,
		OverlapPercent:  overlap * 100,
	}, nil
}
