package catalogue

import (
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// DeadTimeSource records where a resolved dead time came from
type DeadTimeSource string

const (
	DeadTimeFromPreset DeadTimeSource = "preset"
	DeadTimeManual     DeadTimeSource = "manual"
)

// ResolvedDeadTime is the single dead time a calculation runs with
type ResolvedDeadTime struct {
	Value  float64        `json:"value_s"`
	Source DeadTimeSource `json:"source"`
	Sonar  string         `json:"sonar,omitempty"`
}

// ResolveDeadTime picks the dead time for a request. A manual value always
// wins over the sonar preset; a sonar without a preset needs a manual value.
func ResolveDeadTime(sonar SonarProfile, manual shared.Optional[float64]) (ResolvedDeadTime, error) {
	if v, ok := manual.Get(); ok {
		if !(v >= 0) || !shared.IsFinite(v) {
			return ResolvedDeadTime{}, shared.NewInputRangeError("dead_time", v, "dead time must be non-negative")
		}
		return ResolvedDeadTime{Value: v, Source: DeadTimeManual, Sonar: sonar.Name}, nil
	}

	if v, ok := sonar.DeadTime.Get(); ok {
		return ResolvedDeadTime{Value: v, Source: DeadTimeFromPreset, Sonar: sonar.Name}, nil
	}

	if sonar.Name == "" {
		return ResolvedDeadTime{}, shared.NewInputRangeError("dead_time", 0,
			"no sonar selected; supply a dead time manually")
	}
	return ResolvedDeadTime{}, shared.NewInputRangeError("dead_time", 0,
		fmt.Sprintf("no preset dead time for sonar %q; supply one manually", sonar.Name))
}
