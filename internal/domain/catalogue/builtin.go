package catalogue

import (
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// Names of the built-in presets referenced outside this package
const (
	DefaultSonarName  = "Generic Shallow MBES"
	CustomSonarName   = "Custom / Other Sonar"
	CustomOrderName   = "Custom"
	DefaultBottomName = "Smooth / soft sediment"
)

func builtinSonars() []SonarProfile {
	preset := func(name string, dt float64) SonarProfile {
		return SonarProfile{Name: name, DeadTime: shared.Some(dt)}
	}
	return []SonarProfile{
		preset("R2Sonic (High Rate)", 0.02),
		preset("Norbit WBMS (High Rate)", 0.03),
		preset("Teledyne Reson T20/T50 (Shallow)", 0.04),
		preset("Kongsberg EM2040 (Shallow)", 0.05),
		preset("Teledyne/Simrad Shelf MBES", 0.10),
		preset("Kongsberg Deepwater EM302/304", 0.15),
		preset("Atlas Hydrosweep (Deepwater)", 0.20),
		preset(DefaultSonarName, 0.05),
		preset("Generic Deep MBES", 0.15),
		{Name: CustomSonarName},
	}
}

func builtinOrders() []OrderProfile {
	tvu := func(a, b float64) shared.Optional[survey.TVUCoefficients] {
		return shared.Some(survey.TVUCoefficients{A: a, B: b})
	}
	cube := func(minimum float64) shared.Optional[survey.DetectionRule] {
		return shared.Some(survey.DetectionRule{Minimum: minimum})
	}

	return []OrderProfile{
		{
			Name:            "Exclusive Order",
			Aliases:         []string{"Exclusive", "IHO Exclusive Order (200% coverage)"},
			DefaultCoverage: 200,
			TVU:             tvu(0.15, 0.0075),
			Detection:       cube(0.5),
		},
		{
			Name:            "Special Order",
			Aliases:         []string{"Special", "IHO Special Order (100% coverage)"},
			DefaultCoverage: 100,
			TVU:             tvu(0.25, 0.0075),
			Detection:       cube(1.0),
		},
		{
			Name:            "Order 1a",
			Aliases:         []string{"1a", "IHO Order 1a (100% coverage)"},
			DefaultCoverage: 100,
			TVU:             tvu(0.5, 0.013),
			Detection: shared.Some(survey.DetectionRule{
				Minimum:       2.0,
				DepthLimit:    40,
				DepthFraction: 0.10,
			}),
		},
		{
			Name:            "Order 1b",
			Aliases:         []string{"1b", "IHO Order 1b (5% coverage)"},
			DefaultCoverage: 5,
			TVU:             tvu(0.5, 0.013),
		},
		{
			Name:            "Order 2",
			Aliases:         []string{"2", "IHO Order 2 (5% coverage)"},
			DefaultCoverage: 5,
			TVU:             tvu(1.0, 0.023),
		},
		{
			// 200 % is only a starting value; callers normally set coverage
			Name:            CustomOrderName,
			Aliases:         []string{"Custom (set coverage manually)"},
			DefaultCoverage: 200,
		},
	}
}

func builtinBottomTypes() []BottomType {
	return []BottomType{
		{Name: DefaultBottomName, Factor: 1.00},
		{Name: "Mixed", Factor: 0.90},
		{Name: "Rough", Factor: 0.80},
		{Name: "Rocky / boulders", Factor: 0.70},
	}
}

// Default returns the built-in catalogue
func Default() *Catalogue {
	c, err := New(builtinSonars(), builtinOrders(), builtinBottomTypes())
	if err != nil {
		panic("catalogue: invalid built-in presets: " + err.Error())
	}
	return c
}
