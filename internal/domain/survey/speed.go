package survey

import (
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

const (
	// MinSpeedRatio fixes the minimum operational speed at half the optimum
	MinSpeedRatio = 0.5

	DefaultSafetyFactor = 0.80
	MinSafetyFactor     = 0.40
	MaxSafetyFactor     = 1.00
)

// Speed is a vessel speed in both m/s and knots
type Speed struct {
	MetresPerSecond float64 `json:"m_s"`
	Knots           float64 `json:"knots"`
}

// NewSpeed builds a Speed from m/s
func NewSpeed(metresPerSecond float64) Speed {
	return Speed{
		MetresPerSecond: metresPerSecond,
		Knots:           shared.ToKnots(metresPerSecond),
	}
}

func (s Speed) String() string {
	return fmt.Sprintf("%.3f m/s (%.2f kn)", s.MetresPerSecond, s.Knots)
}

// SpeedTier names one of the three computed speeds
type SpeedTier string

const (
	SpeedTierMax     SpeedTier = "max"
	SpeedTierOptimum SpeedTier = "optimum"
	SpeedTierMinimum SpeedTier = "minimum"
)

// ParseSpeedTier parses a tier name; the empty string selects optimum
func ParseSpeedTier(name string) (SpeedTier, error) {
	switch SpeedTier(name) {
	case "", SpeedTierOptimum:
		return SpeedTierOptimum, nil
	case SpeedTierMax:
		return SpeedTierMax, nil
	case SpeedTierMinimum:
		return SpeedTierMinimum, nil
	}
	return "", fmt.Errorf("invalid speed tier: %s", name)
}

// SpeedTiers holds the output of the speed stage
type SpeedTiers struct {
	Max          Speed   `json:"max"`
	Optimum      Speed   `json:"optimum"`
	Minimum      Speed   `json:"minimum"`
	SafetyFactor float64 `json:"safety_factor"`
}

// Tier returns the speed for the given tier
func (t SpeedTiers) Tier(tier SpeedTier) Speed {
	switch tier {
	case SpeedTierMax:
		return t.Max
	case SpeedTierMinimum:
		return t.Minimum
	default:
		return t.Optimum
	}
}

// ValidateSafetyFactor checks the optimum-speed safety factor range
func ValidateSafetyFactor(f float64) error {
	if !(f >= MinSafetyFactor && f <= MaxSafetyFactor) {
		return shared.NewInputRangeError("safety_factor", f, "safety factor must be between 0.40 and 1.00")
	}
	return nil
}

// CalculateSpeeds derives the speed tiers from the allowed advance per ping
// and the ping interval: max = d/T, optimum = max·safety, minimum = optimum/2.
func CalculateSpeeds(alongStep, pingInterval, safetyFactor float64) (SpeedTiers, error) {
	if err := ValidateSafetyFactor(safetyFactor); err != nil {
		return SpeedTiers{}, err
	}
	if !(pingInterval > 0) || !shared.IsFinite(pingInterval) {
		return SpeedTiers{}, shared.NewComputationError("ping_interval",
			fmt.Sprintf("ping interval %v s is not positive", pingInterval))
	}

	maxSpeed := alongStep / pingInterval
	if !(maxSpeed > 0) || !shared.IsFinite(maxSpeed) {
		return SpeedTiers{}, shared.NewComputationError("max_speed",
			fmt.Sprintf("derived maximum speed %v m/s is not positive", maxSpeed))
	}

	optimum := maxSpeed * safetyFactor
	return SpeedTiers{
		Max:          NewSpeed(maxSpeed),
		Optimum:      NewSpeed(optimum),
		Minimum:      NewSpeed(optimum * MinSpeedRatio),
		SafetyFactor: safetyFactor,
	}, nil
}
