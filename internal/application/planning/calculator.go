package planning

import (
	"fmt"

	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// PlanObserver is notified of every successfully computed speed plan
type PlanObserver interface {
	ObserveSpeedPlan(plan *survey.SpeedPlan)
}

// Calculator resolves preset names against a catalogue and runs the engine.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	catalogue *catalogue.Catalogue
	defaults  EngineDefaults
	observer  PlanObserver
}

// NewCalculator creates a calculator. A nil catalogue selects the built-in one.
func NewCalculator(cat *catalogue.Catalogue, defaults EngineDefaults, observer PlanObserver) *Calculator {
	if cat == nil {
		cat = catalogue.Default()
	}
	if defaults.SafetyFactor == 0 {
		defaults.SafetyFactor = survey.DefaultSafetyFactor
	}
	return &Calculator{
		catalogue: cat,
		defaults:  defaults,
		observer:  observer,
	}
}

// Catalogue returns the injected catalogue
func (c *Calculator) Catalogue() *catalogue.Catalogue {
	return c.catalogue
}

// Calculate runs stages 1-5 for one request
func (c *Calculator) Calculate(req PlanRequest) (*SpeedPlanResponse, error) {
	resolved, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	plan, err := survey.CalculateSpeedPlan(resolved.request)
	if err != nil {
		return nil, err
	}

	warnings := resolved.warnings
	if plan.Detection.Status == survey.DetectionFail {
		warnings = append(warnings, plan.Detection.Advice)
	}

	if c.observer != nil {
		c.observer.ObserveSpeedPlan(plan)
	}

	return &SpeedPlanResponse{
		Plan:       plan,
		DeadTime:   resolved.deadTime,
		BottomType: resolved.bottom,
		Warnings:   warnings,
	}, nil
}

type resolvedRequest struct {
	request  survey.Request
	deadTime catalogue.ResolvedDeadTime
	bottom   catalogue.BottomType
	warnings []string
}

func (c *Calculator) resolve(req PlanRequest) (*resolvedRequest, error) {
	warnings := []string{}

	orderName := req.Order
	if orderName == "" {
		orderName = catalogue.CustomOrderName
	}
	order, err := c.catalogue.Order(orderName)
	if err != nil {
		return nil, err
	}

	bottomName := req.BottomType
	if bottomName == "" {
		bottomName = catalogue.DefaultBottomName
	}
	bottom, err := c.catalogue.BottomType(bottomName)
	if err != nil {
		return nil, err
	}

	var sonar catalogue.SonarProfile
	if req.Sonar != "" {
		if sonar, err = c.catalogue.Sonar(req.Sonar); err != nil {
			return nil, err
		}
	}
	deadTime, err := catalogue.ResolveDeadTime(sonar, req.DeadTime)
	if err != nil {
		return nil, err
	}
	if preset, ok := sonar.DeadTime.Get(); ok && deadTime.Source == catalogue.DeadTimeManual && preset != deadTime.Value {
		warnings = append(warnings, fmt.Sprintf("manual dead time %.3f s overrides the %.3f s preset for %s",
			deadTime.Value, preset, sonar.Name))
	}

	enforce := req.EnforceMinimumFullCoverage.OrElse(c.defaults.EnforceMinimumFullCoverage)
	requested, ok := req.Coverage.Get()
	if !ok {
		requested = order.DefaultCoverage
		if enforce && requested < survey.FullCoverage {
			warnings = append(warnings, fmt.Sprintf("%s default coverage of %.0f%% is below the 100%% floor; planning at 100%%",
				order.Name, requested))
			requested = survey.FullCoverage
		}
	}

	coverage, err := survey.NewCoverageSpec(requested, req.TurningMargin.OrElse(c.defaults.TurningMargin), enforce)
	if err != nil {
		return nil, err
	}

	inputs, err := survey.NewSurveyInputs(req.Depth, req.SwathAngle, req.BeamWidth, req.SoundSpeed, deadTime.Value)
	if err != nil {
		return nil, err
	}

	safety := req.SafetyFactor.OrElse(c.defaults.SafetyFactor)

	return &resolvedRequest{
		request: survey.Request{
			Inputs:       inputs,
			Coverage:     coverage,
			Order:        order.Standard(),
			BottomFactor: bottom.Factor,
			SafetyFactor: safety,
		},
		deadTime: deadTime,
		bottom:   bottom,
		warnings: warnings,
	}, nil
}

// Area converts an AreaRequest into planner inputs using the defaults
func (d PlannerDefaults) Area(a AreaRequest) survey.PlannerInputs {
	return survey.PlannerInputs{
		AreaLength:   a.Length,
		AreaWidth:    a.Width,
		DailyHours:   a.DailyHours.OrElse(d.DailyHours),
		WeatherPct:   a.WeatherPct.OrElse(d.WeatherPct),
		OverheadPct:  a.OverheadPct.OrElse(d.OverheadPct),
		FuelBurnRate: a.FuelBurnRate.OrElse(0),
		FuelPrice:    a.FuelPrice.OrElse(d.FuelPrice),
		SpeedTier:    survey.SpeedTier(a.SpeedTier),
	}
}
