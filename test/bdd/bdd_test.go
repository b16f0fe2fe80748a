package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/mbes-planner/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	steps.InitializeSpeedPlanScenario(ctx)
	steps.InitializeCatalogueScenario(ctx)
}
