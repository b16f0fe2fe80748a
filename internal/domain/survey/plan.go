package survey

import (
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// Request carries fully resolved inputs for one speed calculation. Catalogue
// lookups and preset-vs-manual choices happen before the engine is called.
type Request struct {
	Inputs       SurveyInputs
	Coverage     CoverageSpec
	Order        Order
	BottomFactor float64
	SafetyFactor float64
}

// SpeedPlan is the result of stages 1-5
type SpeedPlan struct {
	Inputs     SurveyInputs             `json:"inputs"`
	Order      string                   `json:"order"`
	Timing     PingTiming               `json:"timing"`
	Footprint  float64                  `json:"along_track_footprint_m"`
	SwathWidth float64                  `json:"swath_width_m"`
	Coverage   CoverageResult           `json:"coverage"`
	Speeds     SpeedTiers               `json:"speeds"`
	Detection  DetectionCheck           `json:"detection"`
	TVU        shared.Optional[float64] `json:"tvu_m"`
}

// CalculateSpeedPlan runs the timing, geometry, coverage, speed and quality
// stages in order and stops at the first error.
func CalculateSpeedPlan(req Request) (*SpeedPlan, error) {
	in := req.Inputs
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSafetyFactor(req.SafetyFactor); err != nil {
		return nil, err
	}
	if err := ValidateBottomFactor(req.BottomFactor); err != nil {
		return nil, err
	}

	timing, err := PingInterval(in.Depth, in.SoundSpeed, in.DeadTime, in.SwathAngle)
	if err != nil {
		return nil, err
	}

	footprint, err := AlongTrackFootprint(in.Depth, in.BeamWidth)
	if err != nil {
		return nil, err
	}
	width, err := SwathWidth(in.Depth, in.SwathAngle)
	if err != nil {
		return nil, err
	}

	coverage, err := ApplyCoverage(req.Coverage, footprint, width)
	if err != nil {
		return nil, err
	}

	speeds, err := CalculateSpeeds(coverage.AlongStep, timing.Interval, req.SafetyFactor)
	if err != nil {
		return nil, err
	}

	detection, err := CheckDetection(req.Order, in.Depth, coverage.AlongStep, coverage.LineSpacing, req.BottomFactor)
	if err != nil {
		return nil, err
	}

	return &SpeedPlan{
		Inputs:     in,
		Order:      req.Order.Name,
		Timing:     timing,
		Footprint:  footprint,
		SwathWidth: width,
		Coverage:   coverage,
		Speeds:     speeds,
		Detection:  detection,
		TVU:        TVUAt(req.Order, in.Depth),
	}, nil
}
