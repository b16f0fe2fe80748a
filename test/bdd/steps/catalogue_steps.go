package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	cataloguefile "github.com/andrescamacho/mbes-planner/internal/adapters/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

type catalogueContext struct {
	catalogue *catalogue.Catalogue
	sonar     catalogue.SonarProfile
	order     catalogue.OrderProfile
	response  *planning.SpeedPlanResponse
	err       error
}

func (cc *catalogueContext) reset() {
	cc.catalogue = nil
	cc.sonar = catalogue.SonarProfile{}
	cc.order = catalogue.OrderProfile{}
	cc.response = nil
	cc.err = nil
}

// Given steps

func (cc *catalogueContext) theBuiltInCatalogue() error {
	cc.catalogue = catalogue.Default()
	return nil
}

func (cc *catalogueContext) aCatalogueFile(doc *godog.DocString) error {
	cc.catalogue, cc.err = cataloguefile.Load(strings.NewReader(doc.Content))
	return nil
}

// When steps

func (cc *catalogueContext) iLookUpTheSonar(name string) error {
	if cc.catalogue == nil {
		return fmt.Errorf("no catalogue loaded: %v", cc.err)
	}
	cc.sonar, cc.err = cc.catalogue.Sonar(name)
	return nil
}

func (cc *catalogueContext) iLookUpTheOrder(name string) error {
	if cc.catalogue == nil {
		return fmt.Errorf("no catalogue loaded: %v", cc.err)
	}
	cc.order, cc.err = cc.catalogue.Order(name)
	return nil
}

func (cc *catalogueContext) iPlanWithSonarAndOrder(depth float64, sonar, order string) error {
	if cc.catalogue == nil {
		return fmt.Errorf("no catalogue loaded: %v", cc.err)
	}
	calc := planning.NewCalculator(cc.catalogue, planning.DefaultEngineDefaults(), nil)
	cc.response, cc.err = calc.Calculate(planning.PlanRequest{
		Depth:      depth,
		SwathAngle: 120,
		BeamWidth:  1.0,
		SoundSpeed: 1500,
		Sonar:      sonar,
		Order:      order,
	})
	return nil
}

// Then steps

func (cc *catalogueContext) theCatalogueShouldList(sonars, orders, bottoms int) error {
	if cc.catalogue == nil {
		return fmt.Errorf("no catalogue loaded: %v", cc.err)
	}
	if got := len(cc.catalogue.Sonars()); got != sonars {
		return fmt.Errorf("expected %d sonars, got %d", sonars, got)
	}
	if got := len(cc.catalogue.Orders()); got != orders {
		return fmt.Errorf("expected %d orders, got %d", orders, got)
	}
	if got := len(cc.catalogue.BottomTypes()); got != bottoms {
		return fmt.Errorf("expected %d bottom types, got %d", bottoms, got)
	}
	return nil
}

func (cc *catalogueContext) theSonarPresetDeadTimeShouldBe(want float64) error {
	if cc.err != nil {
		return fmt.Errorf("expected the lookup to succeed, but got error: %v", cc.err)
	}
	got, ok := cc.sonar.DeadTime.Get()
	if !ok {
		return fmt.Errorf("expected a preset dead time of %v s, but %s has none", want, cc.sonar.Name)
	}
	if !withinTolerance(got, want) {
		return fmt.Errorf("expected preset dead time %v s, got %v s", want, got)
	}
	return nil
}

func (cc *catalogueContext) theSonarShouldHaveNoPresetDeadTime() error {
	if cc.err != nil {
		return fmt.Errorf("expected the lookup to succeed, but got error: %v", cc.err)
	}
	if cc.sonar.DeadTime.IsPresent() {
		return fmt.Errorf("expected %s to have no preset dead time, got %v", cc.sonar.Name, cc.sonar.DeadTime.OrElse(0))
	}
	return nil
}

func (cc *catalogueContext) theResolvedOrderShouldBe(name string) error {
	if cc.err != nil {
		return fmt.Errorf("expected the lookup to succeed, but got error: %v", cc.err)
	}
	if cc.order.Name != name {
		return fmt.Errorf("expected order '%s', got '%s'", name, cc.order.Name)
	}
	return nil
}

func (cc *catalogueContext) theLookupShouldFailWith(kind string) error {
	if cc.err == nil {
		return fmt.Errorf("expected the lookup to fail with %s, but it succeeded", kind)
	}
	if got := shared.KindOf(cc.err); string(got) != kind {
		return fmt.Errorf("expected error kind '%s', got '%s' (%v)", kind, got, cc.err)
	}
	return nil
}

func (cc *catalogueContext) loadingTheCatalogueShouldFail(text string) error {
	if cc.err == nil {
		return fmt.Errorf("expected the catalogue to be rejected, but it loaded")
	}
	if !strings.Contains(cc.err.Error(), text) {
		return fmt.Errorf("expected error containing '%s', got '%s'", text, cc.err.Error())
	}
	return nil
}

func (cc *catalogueContext) thePlanShouldUseADeadTimeOf(want float64) error {
	if cc.err != nil {
		return fmt.Errorf("expected the calculation to succeed, but got error: %v", cc.err)
	}
	if got := cc.response.Plan.Inputs.DeadTime; !withinTolerance(got, want) {
		return fmt.Errorf("expected dead time %v s, got %v s", want, got)
	}
	return nil
}

func (cc *catalogueContext) thePlanShouldRequireACube(want float64) error {
	if cc.err != nil {
		return fmt.Errorf("expected the calculation to succeed, but got error: %v", cc.err)
	}
	got, ok := cc.response.Plan.Detection.Requirement.Get()
	if !ok {
		return fmt.Errorf("expected a %v m cube requirement, but none applies", want)
	}
	if !withinTolerance(got, want) {
		return fmt.Errorf("expected a %v m cube requirement, got %v m", want, got)
	}
	return nil
}

func InitializeCatalogueScenario(ctx *godog.ScenarioContext) {
	cc := &catalogueContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the built-in catalogue$`, cc.theBuiltInCatalogue)
	ctx.Step(`^a catalogue file:$`, cc.aCatalogueFile)

	// When steps
	ctx.Step(`^I look up the sonar "([^"]*)"$`, cc.iLookUpTheSonar)
	ctx.Step(`^I look up the order "([^"]*)"$`, cc.iLookUpTheOrder)
	ctx.Step(`^I plan ([0-9.]+) m depth with sonar "([^"]*)" and order "([^"]*)"$`, cc.iPlanWithSonarAndOrder)

	// Then steps
	ctx.Step(`^the catalogue should list (\d+) sonars, (\d+) orders and (\d+) bottom types$`, cc.theCatalogueShouldList)
	ctx.Step(`^the sonar preset dead time should be ([0-9.]+) s$`, cc.theSonarPresetDeadTimeShouldBe)
	ctx.Step(`^the sonar should have no preset dead time$`, cc.theSonarShouldHaveNoPresetDeadTime)
	ctx.Step(`^the resolved order should be "([^"]*)"$`, cc.theResolvedOrderShouldBe)
	ctx.Step(`^the lookup should fail with an? "([^"]*)"$`, cc.theLookupShouldFailWith)
	ctx.Step(`^loading the catalogue should fail with "([^"]*)"$`, cc.loadingTheCatalogueShouldFail)
	ctx.Step(`^the plan should use a dead time of ([0-9.]+) s$`, cc.thePlanShouldUseADeadTimeOf)
	ctx.Step(`^the plan should require a ([0-9.]+) m cube$`, cc.thePlanShouldRequireACube)
}
