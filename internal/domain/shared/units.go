package shared

import "math"

const (
	// KnotsPerMetrePerSecond converts m/s to international knots
	KnotsPerMetrePerSecond = 1.94384449244

	// KilometresPerHourPerKnot is the length of a nautical mile in km
	KilometresPerHourPerKnot = 1.852
)

// ToKnots converts a speed in m/s to knots
func ToKnots(metresPerSecond float64) float64 {
	return metresPerSecond * KnotsPerMetrePerSecond
}

// ToRadians converts degrees to radians
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// IsFinite reports whether v is neither NaN nor infinite
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
