package survey

import (
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// PingTiming is the result of the timing stage, with its intermediate terms
type PingTiming struct {
	HalfAngle        float64 `json:"half_angle_deg"`
	SlantRange       float64 `json:"slant_range_m"`
	TwoWayTravelTime float64 `json:"two_way_travel_time_s"`
	DeadTime         float64 `json:"dead_time_s"`
	Interval         float64 `json:"ping_interval_s"`
}

// PingInterval computes the ping cycle duration for the outer beam.
//
//	R  = D / cos(swath/2)
//	t2 = 2R / c
//	T  = t2 + dead time
func PingInterval(depth, soundSpeed, deadTime, swathDeg float64) (PingTiming, error) {
	if err := validateDepth(depth); err != nil {
		return PingTiming{}, err
	}
	if err := validateSoundSpeed(soundSpeed); err != nil {
		return PingTiming{}, err
	}
	if err := validateDeadTime(deadTime); err != nil {
		return PingTiming{}, err
	}
	if err := validateSwathAngle(swathDeg); err != nil {
		return PingTiming{}, err
	}

	theta := swathDeg / 2
	cosTheta := math.Cos(shared.ToRadians(theta))
	// cos(90°) is not exactly zero in floating point
	if theta >= 90 || cosTheta <= 0 {
		return PingTiming{}, shared.NewGeometryError(theta)
	}

	slant := depth / cosTheta
	twoWay := 2 * slant / soundSpeed

	return PingTiming{
		HalfAngle:        theta,
		SlantRange:       slant,
		TwoWayTravelTime: twoWay,
		DeadTime:         deadTime,
		Interval:         twoWay + deadTime,
	}, nil
}
