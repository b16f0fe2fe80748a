// Package catalogue holds the sonar, survey order and bottom type presets a
// calculation request refers to by name. A Catalogue is immutable once built
// and is handed to the application layer, never read from package state.
package catalogue

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// SonarProfile is a sonar model and its typical dead time between pings.
// DeadTime is absent for sonars without a published preset.
type SonarProfile struct {
	Name     string                   `json:"name"`
	DeadTime shared.Optional[float64] `json:"dead_time_s"`
}

// OrderProfile is an IHO S-44 survey order (or a custom one)
type OrderProfile struct {
	Name            string                                  `json:"name"`
	Aliases         []string                                `json:"aliases,omitempty"`
	DefaultCoverage float64                                 `json:"default_coverage_pct"`
	TVU             shared.Optional[survey.TVUCoefficients] `json:"tvu"`
	Detection       shared.Optional[survey.DetectionRule]   `json:"detection"`
}

// Standard returns the quality standard the engine checks a plan against
func (o OrderProfile) Standard() survey.Order {
	return survey.Order{
		Name:      o.Name,
		TVU:       o.TVU,
		Detection: o.Detection,
	}
}

// BottomType tightens the detection requirement on rough seafloors
type BottomType struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// Catalogue is an immutable set of presets with case-insensitive lookup
type Catalogue struct {
	sonars  []SonarProfile
	orders  []OrderProfile
	bottoms []BottomType

	sonarIdx  map[string]int
	orderIdx  map[string]int
	bottomIdx map[string]int
}

// New validates the presets and builds a catalogue. The slices are copied.
func New(sonars []SonarProfile, orders []OrderProfile, bottoms []BottomType) (*Catalogue, error) {
	c := &Catalogue{
		sonars:    append([]SonarProfile(nil), sonars...),
		orders:    make([]OrderProfile, 0, len(orders)),
		bottoms:   append([]BottomType(nil), bottoms...),
		sonarIdx:  make(map[string]int, len(sonars)),
		orderIdx:  make(map[string]int, len(orders)),
		bottomIdx: make(map[string]int, len(bottoms)),
	}

	for i, s := range c.sonars {
		if err := index(c.sonarIdx, "sonar", s.Name, i); err != nil {
			return nil, err
		}
		if dt, ok := s.DeadTime.Get(); ok && !nonNegative(dt) {
			return nil, fmt.Errorf("sonar %q: dead time must be non-negative, got %v", s.Name, dt)
		}
	}

	for i, o := range orders {
		o.Aliases = append([]string(nil), o.Aliases...)
		c.orders = append(c.orders, o)

		if err := index(c.orderIdx, "order", o.Name, i); err != nil {
			return nil, err
		}
		for _, alias := range o.Aliases {
			if err := index(c.orderIdx, "order", alias, i); err != nil {
				return nil, err
			}
		}
		if !(o.DefaultCoverage > 0) || !shared.IsFinite(o.DefaultCoverage) {
			return nil, fmt.Errorf("order %q: default coverage must be positive, got %v", o.Name, o.DefaultCoverage)
		}
		if tvu, ok := o.TVU.Get(); ok && !(nonNegative(tvu.A) && nonNegative(tvu.B)) {
			return nil, fmt.Errorf("order %q: TVU coefficients must be finite and non-negative, got a=%v b=%v", o.Name, tvu.A, tvu.B)
		}
		if rule, ok := o.Detection.Get(); ok {
			if !(rule.Minimum > 0) || !shared.IsFinite(rule.Minimum) {
				return nil, fmt.Errorf("order %q: detection minimum must be positive, got %v", o.Name, rule.Minimum)
			}
			if !nonNegative(rule.DepthFraction) {
				return nil, fmt.Errorf("order %q: detection depth fraction must be finite and non-negative, got %v", o.Name, rule.DepthFraction)
			}
			if !nonNegative(rule.DepthLimit) {
				return nil, fmt.Errorf("order %q: detection depth limit must be finite and non-negative, got %v", o.Name, rule.DepthLimit)
			}
		}
	}

	for i, b := range c.bottoms {
		if err := index(c.bottomIdx, "bottom type", b.Name, i); err != nil {
			return nil, err
		}
		if err := survey.ValidateBottomFactor(b.Factor); err != nil {
			return nil, fmt.Errorf("bottom type %q: %w", b.Name, err)
		}
	}

	return c, nil
}

func nonNegative(v float64) bool {
	return v >= 0 && shared.IsFinite(v)
}

func index(idx map[string]int, kind, name string, pos int) error {
	key := normalize(name)
	if key == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if _, dup := idx[key]; dup {
		return fmt.Errorf("duplicate %s name %q", kind, name)
	}
	idx[key] = pos
	return nil
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func unknown(field, name string, known []string) error {
	sort.Strings(known)
	return shared.NewInputRangeError(field, 0,
		fmt.Sprintf("unknown %s %q (known: %s)", strings.ReplaceAll(field, "_", " "), name, strings.Join(known, ", ")))
}

// Sonar looks up a sonar by name
func (c *Catalogue) Sonar(name string) (SonarProfile, error) {
	i, ok := c.sonarIdx[normalize(name)]
	if !ok {
		return SonarProfile{}, unknown("sonar", name, c.SonarNames())
	}
	return c.sonars[i], nil
}

// Order looks up a survey order by name or alias
func (c *Catalogue) Order(name string) (OrderProfile, error) {
	i, ok := c.orderIdx[normalize(name)]
	if !ok {
		return OrderProfile{}, unknown("order", name, c.OrderNames())
	}
	return c.orders[i], nil
}

// BottomType looks up a bottom type by name
func (c *Catalogue) BottomType(name string) (BottomType, error) {
	i, ok := c.bottomIdx[normalize(name)]
	if !ok {
		return BottomType{}, unknown("bottom_type", name, c.BottomTypeNames())
	}
	return c.bottoms[i], nil
}

// Sonars returns the sonar presets in catalogue order
func (c *Catalogue) Sonars() []SonarProfile {
	return append([]SonarProfile(nil), c.sonars...)
}

// Orders returns the order presets in catalogue order
func (c *Catalogue) Orders() []OrderProfile {
	out := make([]OrderProfile, len(c.orders))
	for i, o := range c.orders {
		o.Aliases = append([]string(nil), o.Aliases...)
		out[i] = o
	}
	return out
}

// BottomTypes returns the bottom types in catalogue order
func (c *Catalogue) BottomTypes() []BottomType {
	return append([]BottomType(nil), c.bottoms...)
}

func (c *Catalogue) SonarNames() []string {
	names := make([]string, len(c.sonars))
	for i, s := range c.sonars {
		names[i] = s.Name
	}
	return names
}

func (c *Catalogue) OrderNames() []string {
	names := make([]string, len(c.orders))
	for i, o := range c.orders {
		names[i] = o.Name
	}
	return names
}

func (c *Catalogue) BottomTypeNames() []string {
	names := make([]string, len(c.bottoms))
	for i, b := range c.bottoms {
		names[i] = b.Name
	}
	return names
}
