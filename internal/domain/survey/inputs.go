// Package survey implements the MBES geometry and coverage engine.
//
// The engine is a forward pipeline of pure stages:
//
//  1. Timing - ping interval from slant range, sound speed and dead time.
//  2. Geometry - along-track footprint and across-track swath width.
//  3. Coverage - coverage percentage to advance fraction and line spacing.
//  4. Speed - maximum, optimum and minimum operational speeds.
//  5. Quality - indicative cube detection and TVU for the chosen order.
//  6. Planner - line count, sailing time, days and fuel over an area.
//
// Every stage validates its own inputs and fails fast with one of the typed
// errors in the shared package. Nothing is cached between calls, so any number
// of calculations may run concurrently.
//
// All formulas assume a flat bottom and a straight ray path. They are
// planning approximations, not survey-grade measurements.
package survey

import (
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// SurveyInputs holds the acoustic and geometric inputs of a single calculation
type SurveyInputs struct {
	Depth      float64 `json:"depth_m"`
	SwathAngle float64 `json:"swath_angle_deg"`
	BeamWidth  float64 `json:"beam_width_deg"`
	SoundSpeed float64 `json:"sound_speed_m_s"`
	DeadTime   float64 `json:"dead_time_s"`
}

// NewSurveyInputs creates survey inputs with validation
func NewSurveyInputs(depth, swathAngle, beamWidth, soundSpeed, deadTime float64) (SurveyInputs, error) {
	in := SurveyInputs{
		Depth:      depth,
		SwathAngle: swathAngle,
		BeamWidth:  beamWidth,
		SoundSpeed: soundSpeed,
		DeadTime:   deadTime,
	}
	if err := in.Validate(); err != nil {
		return SurveyInputs{}, err
	}
	return in, nil
}

// Validate checks every input against its domain bounds
func (in SurveyInputs) Validate() error {
	if err := validateDepth(in.Depth); err != nil {
		return err
	}
	if err := validateSwathAngle(in.SwathAngle); err != nil {
		return err
	}
	if err := validateAngle("beam_width", in.BeamWidth); err != nil {
		return err
	}
	if err := validateSoundSpeed(in.SoundSpeed); err != nil {
		return err
	}
	return validateDeadTime(in.DeadTime)
}

func validateDepth(depth float64) error {
	if !(depth > 0) || math.IsInf(depth, 0) {
		return shared.NewInputRangeError("depth", depth, "depth must be positive")
	}
	return nil
}

func validateSoundSpeed(c float64) error {
	if !(c > 0) || math.IsInf(c, 0) {
		return shared.NewInputRangeError("sound_speed", c, "sound speed must be positive")
	}
	return nil
}

func validateDeadTime(dt float64) error {
	if !(dt >= 0) || math.IsInf(dt, 0) {
		return shared.NewInputRangeError("dead_time", dt, "dead time cannot be negative")
	}
	return nil
}

func validateAngle(field string, deg float64) error {
	if !(deg > 0 && deg < 180) {
		return shared.NewInputRangeError(field, deg, "angle must be between 0 and 180 degrees")
	}
	return nil
}

// validateSwathAngle separates the two failure modes of the swath: a
// non-positive angle is a range error, while a half-angle at or beyond 90°
// has no slant range at all.
func validateSwathAngle(deg float64) error {
	if !(deg > 0) {
		return shared.NewInputRangeError("swath_angle", deg, "swath angle must be between 0 and 180 degrees")
	}
	if deg >= 180 {
		return shared.NewGeometryError(deg / 2)
	}
	return nil
}
