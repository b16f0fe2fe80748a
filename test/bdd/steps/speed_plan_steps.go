package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

type speedPlanContext struct {
	defaults planning.EngineDefaults
	request  planning.PlanRequest
	area     planning.AreaRequest
	response *planning.SpeedPlanResponse
	survey   *survey.SurveyPlan
	sweep    *planning.SweepResponse
	err      error
}

func (sc *speedPlanContext) reset() {
	sc.defaults = planning.DefaultEngineDefaults()
	sc.request = planning.PlanRequest{
		SoundSpeed: 1500,
		BeamWidth:  1.0,
		Sonar:      "Teledyne/Simrad Shelf MBES",
	}
	sc.area = planning.AreaRequest{}
	sc.response = nil
	sc.survey = nil
	sc.sweep = nil
	sc.err = nil
}

func (sc *speedPlanContext) calculator() *planning.Calculator {
	return planning.NewCalculator(nil, sc.defaults, nil)
}

func withinTolerance(got, want float64) bool {
	return math.Abs(got-want) <= 5*math.Pow(10, -float64(decimals(want))-1)+1e-9
}

// decimals counts the digits written after the point in the feature text
func decimals(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Given steps

func (sc *speedPlanContext) aSurveyAtDepthWithSwathAndBeam(depth, swath, beam float64) error {
	sc.request.Depth = depth
	sc.request.SwathAngle = swath
	sc.request.BeamWidth = beam
	return nil
}

func (sc *speedPlanContext) aSoundSpeedOf(c float64) error {
	sc.request.SoundSpeed = c
	return nil
}

func (sc *speedPlanContext) theSonar(name string) error {
	sc.request.Sonar = name
	return nil
}

func (sc *speedPlanContext) theOrder(name string) error {
	sc.request.Order = name
	return nil
}

func (sc *speedPlanContext) theBottomType(name string) error {
	sc.request.BottomType = name
	return nil
}

func (sc *speedPlanContext) aRequestedCoverageOf(pct float64) error {
	sc.request.Coverage = shared.Some(pct)
	return nil
}

func (sc *speedPlanContext) aTurningMarginOf(pct float64) error {
	sc.request.TurningMargin = shared.Some(pct)
	return nil
}

func (sc *speedPlanContext) aManualDeadTimeOf(dt float64) error {
	sc.request.DeadTime = shared.Some(dt)
	return nil
}

func (sc *speedPlanContext) theFullCoverageFloorIsRelaxed() error {
	sc.request.EnforceMinimumFullCoverage = shared.Some(false)
	return nil
}

func (sc *speedPlanContext) anAreaOf(length, width float64) error {
	sc.area.Length = length
	sc.area.Width = width
	sc.area.DailyHours = shared.Some(12.0)
	sc.area.WeatherPct = shared.Some(20.0)
	sc.area.OverheadPct = shared.Some(15.0)
	return nil
}

func (sc *speedPlanContext) aFuelBurnRateAtPrice(rate, price float64) error {
	sc.area.FuelBurnRate = shared.Some(rate)
	sc.area.FuelPrice = shared.Some(price)
	return nil
}

func (sc *speedPlanContext) plannedAtTheSpeed(tier string) error {
	sc.area.SpeedTier = tier
	return nil
}

// When steps

func (sc *speedPlanContext) iCalculateTheSpeedPlan() error {
	sc.response, sc.err = sc.calculator().Calculate(sc.request)
	return nil
}

func (sc *speedPlanContext) iPlanTheSurvey() error {
	sc.response, sc.err = sc.calculator().Calculate(sc.request)
	if sc.err != nil {
		return nil
	}
	sc.survey, sc.err = survey.PlanSurvey(sc.response.Plan, planning.DefaultPlannerDefaults().Area(sc.area))
	return nil
}

func (sc *speedPlanContext) iRunASweepOverDepths(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header row and at least one scenario")
	}

	scenarios := make([]planning.Scenario, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		depth, err := strconv.ParseFloat(cell(table, row, "depth"), 64)
		if err != nil {
			return fmt.Errorf("invalid depth in row: %w", err)
		}
		req := sc.request
		req.Depth = depth
		if swath := cell(table, row, "swath"); swath != "" {
			if req.SwathAngle, err = strconv.ParseFloat(swath, 64); err != nil {
				return fmt.Errorf("invalid swath in row: %w", err)
			}
		}
		scenarios = append(scenarios, planning.Scenario{Name: cell(table, row, "name"), Request: req})
	}

	handler := planning.NewRunSweepHandler(sc.calculator(), 2)
	resp, err := handler.Handle(context.Background(), &planning.RunSweepCommand{Scenarios: scenarios})
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	sc.sweep = resp.(*planning.SweepResponse)
	return nil
}

// Then steps

func (sc *speedPlanContext) plan() (*survey.SpeedPlan, error) {
	if sc.err != nil {
		return nil, fmt.Errorf("expected the calculation to succeed, but got error: %v", sc.err)
	}
	if sc.response == nil {
		return nil, fmt.Errorf("no speed plan was calculated")
	}
	return sc.response.Plan, nil
}

func (sc *speedPlanContext) expectValue(name string, got, want float64) error {
	if !withinTolerance(got, want) {
		return fmt.Errorf("expected %s %v, got %.6f", name, want, got)
	}
	return nil
}

func (sc *speedPlanContext) thePingIntervalShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("ping interval", plan.Timing.Interval, want)
}

func (sc *speedPlanContext) theSlantRangeShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("slant range", plan.Timing.SlantRange, want)
}

func (sc *speedPlanContext) theFootprintShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("along-track footprint", plan.Footprint, want)
}

func (sc *speedPlanContext) theAlongTrackStepShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("along-track step", plan.Coverage.AlongStep, want)
}

func (sc *speedPlanContext) theLineSpacingShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("line spacing", plan.Coverage.LineSpacing, want)
}

func (sc *speedPlanContext) theEffectiveCoverageShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("effective coverage", plan.Coverage.Effective, want)
}

func (sc *speedPlanContext) theMaximumSpeedShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("maximum speed", plan.Speeds.Max.Knots, want)
}

func (sc *speedPlanContext) theOptimumSpeedShouldBeOfTheMaximum(ratio float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	return sc.expectValue("optimum/max ratio", plan.Speeds.Optimum.MetresPerSecond/plan.Speeds.Max.MetresPerSecond, ratio)
}

func (sc *speedPlanContext) theTVUShouldBe(want float64) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	tvu, ok := plan.TVU.Get()
	if !ok {
		return fmt.Errorf("expected TVU %v, but none was reported", want)
	}
	return sc.expectValue("TVU", tvu, want)
}

func (sc *speedPlanContext) noTVUShouldBeReported() error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	if plan.TVU.IsPresent() {
		return fmt.Errorf("expected no TVU, got %v", plan.TVU.OrElse(0))
	}
	return nil
}

func (sc *speedPlanContext) theDetectionCheckShouldBe(status string) error {
	plan, err := sc.plan()
	if err != nil {
		return err
	}
	if string(plan.Detection.Status) != status {
		return fmt.Errorf("expected detection status '%s', got '%s'", status, plan.Detection.Status)
	}
	return nil
}

func (sc *speedPlanContext) theDeadTimeShouldComeFrom(source string, value float64) error {
	if _, err := sc.plan(); err != nil {
		return err
	}
	dt := sc.response.DeadTime
	if string(dt.Source) != source {
		return fmt.Errorf("expected dead time source '%s', got '%s'", source, dt.Source)
	}
	return sc.expectValue("dead time", dt.Value, value)
}

func (sc *speedPlanContext) thereShouldBeAWarningContaining(text string) error {
	if _, err := sc.plan(); err != nil {
		return err
	}
	for _, w := range sc.response.Warnings {
		if strings.Contains(w, text) {
			return nil
		}
	}
	return fmt.Errorf("expected a warning containing '%s', got %q", text, sc.response.Warnings)
}

func (sc *speedPlanContext) theCalculationShouldFailWith(kind string) error {
	if sc.err == nil {
		return fmt.Errorf("expected the calculation to fail with %s, but it succeeded", kind)
	}
	if got := shared.KindOf(sc.err); string(got) != kind {
		return fmt.Errorf("expected error kind '%s', got '%s' (%v)", kind, got, sc.err)
	}
	return nil
}

func (sc *speedPlanContext) theSurveyShouldNeedLines(want int) error {
	if sc.err != nil {
		return fmt.Errorf("expected planning to succeed, but got error: %v", sc.err)
	}
	if got := sc.survey.Estimate.LineCount; got != want {
		return fmt.Errorf("expected %d lines, got %d", want, got)
	}
	return nil
}

func (sc *speedPlanContext) theTotalTrackShouldBe(want float64) error {
	if sc.err != nil {
		return fmt.Errorf("expected planning to succeed, but got error: %v", sc.err)
	}
	return sc.expectValue("total track", sc.survey.Estimate.TotalTrackKm, want)
}

func (sc *speedPlanContext) thePlanningSpeedShouldBeTheTier(tier string) error {
	if sc.err != nil {
		return fmt.Errorf("expected planning to succeed, but got error: %v", sc.err)
	}
	parsed, err := survey.ParseSpeedTier(tier)
	if err != nil {
		return err
	}
	want := sc.response.Plan.Speeds.Tier(parsed)
	if got := sc.survey.Estimate.PlanningSpeed; got != want {
		return fmt.Errorf("expected planning speed %s, got %s", want, got)
	}
	return nil
}

func (sc *speedPlanContext) theFuelCostShouldBe(want float64) error {
	if sc.err != nil {
		return fmt.Errorf("expected planning to succeed, but got error: %v", sc.err)
	}
	cost, ok := sc.survey.Estimate.FuelCost.Get()
	if !ok {
		return fmt.Errorf("expected fuel cost %v, but none was reported", want)
	}
	return sc.expectValue("fuel cost", cost, want)
}

func (sc *speedPlanContext) noFuelEstimateShouldBeReported() error {
	if sc.err != nil {
		return fmt.Errorf("expected planning to succeed, but got error: %v", sc.err)
	}
	if sc.survey.Estimate.FuelVolume.IsPresent() || sc.survey.Estimate.FuelCost.IsPresent() {
		return fmt.Errorf("expected no fuel estimate, got %+v", sc.survey.Estimate)
	}
	return nil
}

func (sc *speedPlanContext) planningShouldFailWith(kind string) error {
	return sc.theCalculationShouldFailWith(kind)
}

func (sc *speedPlanContext) sweepResult(name string) (*planning.SweepResult, error) {
	if sc.sweep == nil {
		return nil, fmt.Errorf("no sweep was run")
	}
	for i := range sc.sweep.Results {
		if sc.sweep.Results[i].Name == name {
			return &sc.sweep.Results[i], nil
		}
	}
	return nil, fmt.Errorf("no sweep result named '%s'", name)
}

func (sc *speedPlanContext) scenarioShouldSucceed(name string) error {
	res, err := sc.sweepResult(name)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return fmt.Errorf("expected scenario '%s' to succeed, but got %s: %s", name, res.Error.Kind, res.Error.Message)
	}
	return nil
}

func (sc *speedPlanContext) scenarioShouldFailWith(name, kind string) error {
	res, err := sc.sweepResult(name)
	if err != nil {
		return err
	}
	if res.Error == nil {
		return fmt.Errorf("expected scenario '%s' to fail with %s, but it succeeded", name, kind)
	}
	if string(res.Error.Kind) != kind {
		return fmt.Errorf("expected scenario '%s' to fail with %s, got %s", name, kind, res.Error.Kind)
	}
	return nil
}

func (sc *speedPlanContext) theSweepShouldReport(succeeded, failed int) error {
	if sc.sweep == nil {
		return fmt.Errorf("no sweep was run")
	}
	if sc.sweep.Succeeded != succeeded || sc.sweep.Failed != failed {
		return fmt.Errorf("expected %d succeeded and %d failed, got %d and %d",
			succeeded, failed, sc.sweep.Succeeded, sc.sweep.Failed)
	}
	return nil
}

func (sc *speedPlanContext) resultsShouldFollowScenarioOrder(table *godog.Table) error {
	if sc.sweep == nil {
		return fmt.Errorf("no sweep was run")
	}
	if len(table.Rows) != len(sc.sweep.Results) {
		return fmt.Errorf("expected %d results, got %d", len(table.Rows), len(sc.sweep.Results))
	}
	for i, row := range table.Rows {
		if got := sc.sweep.Results[i].Name; got != row.Cells[0].Value {
			return fmt.Errorf("expected result %d to be '%s', got '%s'", i, row.Cells[0].Value, got)
		}
	}
	return nil
}

func cell(table *godog.Table, row *messages.PickleTableRow, column string) string {
	for i, c := range table.Rows[0].Cells {
		if c.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func InitializeSpeedPlanScenario(ctx *godog.ScenarioContext) {
	sc := &speedPlanContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a survey at ([0-9.]+) m depth with a ([0-9.]+) degree swath and a ([0-9.]+) degree beam$`, sc.aSurveyAtDepthWithSwathAndBeam)
	ctx.Step(`^a sound speed of ([0-9.]+) m/s$`, sc.aSoundSpeedOf)
	ctx.Step(`^the sonar "([^"]*)"$`, sc.theSonar)
	ctx.Step(`^the order "([^"]*)"$`, sc.theOrder)
	ctx.Step(`^the bottom type "([^"]*)"$`, sc.theBottomType)
	ctx.Step(`^a requested coverage of ([0-9.]+) percent$`, sc.aRequestedCoverageOf)
	ctx.Step(`^a turning margin of ([0-9.]+) percent$`, sc.aTurningMarginOf)
	ctx.Step(`^a manual dead time of ([0-9.]+) s$`, sc.aManualDeadTimeOf)
	ctx.Step(`^the full coverage floor is relaxed$`, sc.theFullCoverageFloorIsRelaxed)
	ctx.Step(`^an area of ([0-9.]+) m by ([0-9.]+) m$`, sc.anAreaOf)
	ctx.Step(`^a fuel burn rate of ([0-9.]+) l/h at ([0-9.]+) per litre$`, sc.aFuelBurnRateAtPrice)
	ctx.Step(`^the survey is planned at the "([^"]*)" speed$`, sc.plannedAtTheSpeed)

	// When steps
	ctx.Step(`^I calculate the speed plan$`, sc.iCalculateTheSpeedPlan)
	ctx.Step(`^I plan the survey$`, sc.iPlanTheSurvey)
	ctx.Step(`^I run a sweep over:$`, sc.iRunASweepOverDepths)

	// Then steps
	ctx.Step(`^the slant range should be ([0-9.]+) m$`, sc.theSlantRangeShouldBe)
	ctx.Step(`^the ping interval should be ([0-9.]+) s$`, sc.thePingIntervalShouldBe)
	ctx.Step(`^the along-track footprint should be ([0-9.]+) m$`, sc.theFootprintShouldBe)
	ctx.Step(`^the along-track step should be ([0-9.]+) m$`, sc.theAlongTrackStepShouldBe)
	ctx.Step(`^the line spacing should be ([0-9.]+) m$`, sc.theLineSpacingShouldBe)
	ctx.Step(`^the effective coverage should be ([0-9.]+) percent$`, sc.theEffectiveCoverageShouldBe)
	ctx.Step(`^the maximum speed should be ([0-9.]+) knots$`, sc.theMaximumSpeedShouldBe)
	ctx.Step(`^the optimum speed should be ([0-9.]+) of the maximum$`, sc.theOptimumSpeedShouldBeOfTheMaximum)
	ctx.Step(`^the TVU should be ([0-9.]+) m$`, sc.theTVUShouldBe)
	ctx.Step(`^no TVU should be reported$`, sc.noTVUShouldBeReported)
	ctx.Step(`^the detection check should be "([^"]*)"$`, sc.theDetectionCheckShouldBe)
	ctx.Step(`^the dead time should come from the "([^"]*)" at ([0-9.]+) s$`, sc.theDeadTimeShouldComeFrom)
	ctx.Step(`^there should be a warning containing "([^"]*)"$`, sc.thereShouldBeAWarningContaining)
	ctx.Step(`^the calculation should fail with an? "([^"]*)"$`, sc.theCalculationShouldFailWith)
	ctx.Step(`^planning should fail with an? "([^"]*)"$`, sc.planningShouldFailWith)
	ctx.Step(`^the survey should need (\d+) lines$`, sc.theSurveyShouldNeedLines)
	ctx.Step(`^the total track should be ([0-9.]+) km$`, sc.theTotalTrackShouldBe)
	ctx.Step(`^the planning speed should be the "([^"]*)" speed$`, sc.thePlanningSpeedShouldBeTheTier)
	ctx.Step(`^the fuel cost should be ([0-9.]+)$`, sc.theFuelCostShouldBe)
	ctx.Step(`^no fuel estimate should be reported$`, sc.noFuelEstimateShouldBeReported)
	ctx.Step(`^scenario "([^"]*)" should succeed$`, sc.scenarioShouldSucceed)
	ctx.Step(`^scenario "([^"]*)" should fail with an? "([^"]*)"$`, sc.scenarioShouldFailWith)
	ctx.Step(`^the sweep should report (\d+) succeeded and (\d+) failed$`, sc.theSweepShouldReport)
	ctx.Step(`^the results should be in the order:$`, sc.resultsShouldFollowScenarioOrder)
}
