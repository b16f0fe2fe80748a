package survey

import (
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// AlongTrackFootprint returns the along-track length L illuminated by one ping
// on a flat bottom: L = 2·D·tan(beam/2).
func AlongTrackFootprint(depth, beamWidthDeg float64) (float64, error) {
	if err := validateDepth(depth); err != nil {
		return 0, err
	}
	if err := validateAngle("beam_width", beamWidthDeg); err != nil {
		return 0, err
	}
	return footprint(depth, beamWidthDeg), nil
}

// SwathWidth returns the across-track width W of the swath on a flat bottom:
// W = 2·D·tan(swath/2).
func SwathWidth(depth, swathDeg float64) (float64, error) {
	if err := validateDepth(depth); err != nil {
		return 0, err
	}
	if err := validateAngle("swath_angle", swathDeg); err != nil {
		return 0, err
	}
	return footprint(depth, swathDeg), nil
}

func footprint(depth, angleDeg float64) float64 {
	return 2 * depth * math.Tan(shared.ToRadians(angleDeg/2))
}
