package survey

import (
	"fmt"
	"math"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// DetectionRule is the minimum cube edge an IHO order requires a survey to
// detect. Requirement is Minimum up to DepthLimit, and DepthFraction·depth
// beyond it when DepthFraction is set.
type DetectionRule struct {
	Minimum       float64 `json:"minimum_m"`
	DepthLimit    float64 `json:"depth_limit_m,omitempty"`
	DepthFraction float64 `json:"depth_fraction,omitempty"`
}

// Requirement returns the cube edge (m) required at depth
func (r DetectionRule) Requirement(depth float64) float64 {
	if r.DepthFraction > 0 && depth > r.DepthLimit {
		return r.DepthFraction * depth
	}
	return r.Minimum
}

// TVUCoefficients are the (a, b) terms of the S-44 TVU envelope
type TVUCoefficients struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// At returns TVU_max(d) = sqrt(a² + (b·d)²)
func (c TVUCoefficients) At(depth float64) float64 {
	return math.Hypot(c.A, c.B*depth)
}

// Order is the quality standard a plan is checked against. Either part may be
// absent, in which case the matching result is absent too.
type Order struct {
	Name      string                           `json:"name"`
	TVU       shared.Optional[TVUCoefficients] `json:"tvu"`
	Detection shared.Optional[DetectionRule]   `json:"detection"`
}

// DetectionStatus is the advisory outcome of the cube-detection check
type DetectionStatus string

const (
	DetectionPass          DetectionStatus = "pass"
	DetectionFail          DetectionStatus = "fail"
	DetectionNotApplicable DetectionStatus = "not_applicable"
)

// DetectionCheck compares the inferred detection limit with the order's
// requirement. It is advisory only and never fails a calculation.
type DetectionCheck struct {
	Limit           float64                  `json:"limit_m"`
	BaseRequirement shared.Optional[float64] `json:"base_requirement_m"`
	BottomFactor    float64                  `json:"bottom_factor"`
	Requirement     shared.Optional[float64] `json:"requirement_m"`
	Status          DetectionStatus          `json:"status"`
	Advice          string                   `json:"advice"`
}

// Compliant reports whether the check passed
func (c DetectionCheck) Compliant() bool {
	return c.Status == DetectionPass
}

// DetectionLimit estimates the smallest detectable cube edge from the sounding
// grid: a quarter of the grid-cell diagonal. This is a rough heuristic, not a
// certified S-44 compliance test.
func DetectionLimit(alongStep, lineSpacing float64) float64 {
	return math.Hypot(alongStep, lineSpacing) / 4
}

// CompareDetection classifies a detection limit against a requirement
func CompareDetection(limit float64, requirement shared.Optional[float64]) DetectionStatus {
	req, ok := requirement.Get()
	if !ok {
		return DetectionNotApplicable
	}
	if limit <= req {
		return DetectionPass
	}
	return DetectionFail
}

// ValidateBottomFactor checks a bottom-type tightening factor
func ValidateBottomFactor(f float64) error {
	if !(f > 0 && f <= 1) {
		return shared.NewInputRangeError("bottom_factor", f, "bottom type factor must be in (0, 1]")
	}
	return nil
}

// CheckDetection runs the cube-detection check for an order at depth
func CheckDetection(order Order, depth, alongStep, lineSpacing, bottomFactor float64) (DetectionCheck, error) {
	if err := ValidateBottomFactor(bottomFactor); err != nil {
		return DetectionCheck{}, err
	}

	check := DetectionCheck{
		Limit:        DetectionLimit(alongStep, lineSpacing),
		BottomFactor: bottomFactor,
	}

	if rule, ok := order.Detection.Get(); ok {
		base := rule.Requirement(depth)
		check.BaseRequirement = shared.Some(base)
		check.Requirement = shared.Some(base * bottomFactor)
	}

	check.Status = CompareDetection(check.Limit, check.Requirement)
	switch check.Status {
	case DetectionPass:
		check.Advice = fmt.Sprintf("indicative detection limit %.2f m meets the %.2f m cube requirement",
			check.Limit, check.Requirement.OrElse(0))
	case DetectionFail:
		check.Advice = fmt.Sprintf("indicative detection limit %.2f m exceeds the %.2f m cube requirement; increase coverage or reduce speed",
			check.Limit, check.Requirement.OrElse(0))
	default:
		check.Advice = fmt.Sprintf("no explicit feature detection requirement for %s", order.Name)
	}
	return check, nil
}

// TVUAt returns the order's TVU at depth, or absent when it has no coefficients
func TVUAt(order Order, depth float64) shared.Optional[float64] {
	c, ok := order.TVU.Get()
	if !ok {
		return shared.None[float64]()
	}
	return shared.Some(c.At(depth))
}
