package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// speedFlags holds the flags shared by speed and plan
type speedFlags struct {
	depth         float64
	swath         float64
	beam          float64
	soundSpeed    float64
	sonar         string
	deadTime      float64
	order         string
	coverage      float64
	turningMargin float64
	relaxed       bool
	bottom        string
	safetyFactor  float64
}

func (f *speedFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.depth, "depth", 0, "Water depth in metres [required]")
	fs.Float64Var(&f.swath, "swath", 120, "Total swath angle in degrees")
	fs.Float64Var(&f.beam, "beam", 1.0, "Along-track transmit beam width in degrees")
	fs.Float64Var(&f.soundSpeed, "sound-speed", 1500, "Sound speed in m/s")
	fs.StringVar(&f.sonar, "sonar", catalogue.DefaultSonarName, "Sonar preset supplying the dead time")
	fs.Float64Var(&f.deadTime, "dead-time", 0, "Dead time in seconds; overrides the sonar preset")
	fs.StringVar(&f.order, "order", catalogue.CustomOrderName, "Survey order")
	fs.Float64Var(&f.coverage, "coverage", 0, "Bathymetric coverage in percent (default: the order's coverage)")
	fs.Float64Var(&f.turningMargin, "turning-margin", 0, "Extra line overlap in percent (default from config)")
	fs.BoolVar(&f.relaxed, "relaxed", false, "Allow coverage below 100%")
	fs.StringVar(&f.bottom, "bottom", catalogue.DefaultBottomName, "Bottom type")
	fs.Float64Var(&f.safetyFactor, "safety-factor", 0, "Optimum speed safety factor (default from config)")
	_ = cmd.MarkFlagRequired("depth")
}

// request builds a PlanRequest. Flags the user did not set stay absent so
// the order preset and configured defaults apply.
func (f *speedFlags) request(fs *pflag.FlagSet) planning.PlanRequest {
	req := planning.PlanRequest{
		Depth:      f.depth,
		SwathAngle: f.swath,
		BeamWidth:  f.beam,
		SoundSpeed: f.soundSpeed,
		Sonar:      f.sonar,
		Order:      f.order,
		BottomType: f.bottom,
	}
	req.DeadTime = optionalFlag(fs, "dead-time", f.deadTime)
	req.Coverage = optionalFlag(fs, "coverage", f.coverage)
	req.TurningMargin = optionalFlag(fs, "turning-margin", f.turningMargin)
	req.SafetyFactor = optionalFlag(fs, "safety-factor", f.safetyFactor)
	if f.relaxed {
		req.EnforceMinimumFullCoverage = shared.Some(false)
	}
	return req
}

// areaFlags holds the planner flags of plan
type areaFlags struct {
	length      float64
	width       float64
	dailyHours  float64
	weatherPct  float64
	overheadPct float64
	fuelBurn    float64
	fuelPrice   float64
	tier        string
}

func (f *areaFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.length, "length", 0, "Area length along the survey lines in metres [required]")
	fs.Float64Var(&f.width, "width", 0, "Area width across the survey lines in metres [required]")
	fs.Float64Var(&f.dailyHours, "daily-hours", 0, "Working hours per day (default from config)")
	fs.Float64Var(&f.weatherPct, "weather", 0, "Weather downtime allowance in percent (default from config)")
	fs.Float64Var(&f.overheadPct, "overhead", 0, "Line-change overhead in percent (default from config)")
	fs.Float64Var(&f.fuelBurn, "fuel-burn", 0, "Fuel burn rate in litres per hour")
	fs.Float64Var(&f.fuelPrice, "fuel-price", 0, "Fuel price per litre (default from config)")
	fs.StringVar(&f.tier, "tier", "optimum", "Planning speed tier: max, optimum or minimum")
	_ = cmd.MarkFlagRequired("length")
	_ = cmd.MarkFlagRequired("width")
}

func (f *areaFlags) request(fs *pflag.FlagSet) planning.AreaRequest {
	return planning.AreaRequest{
		Length:       f.length,
		Width:        f.width,
		DailyHours:   optionalFlag(fs, "daily-hours", f.dailyHours),
		WeatherPct:   optionalFlag(fs, "weather", f.weatherPct),
		OverheadPct:  optionalFlag(fs, "overhead", f.overheadPct),
		FuelBurnRate: optionalFlag(fs, "fuel-burn", f.fuelBurn),
		FuelPrice:    optionalFlag(fs, "fuel-price", f.fuelPrice),
		SpeedTier:    f.tier,
	}
}

func optionalFlag(fs *pflag.FlagSet, name string, value float64) shared.Optional[float64] {
	if fs.Changed(name) {
		return shared.Some(value)
	}
	return shared.None[float64]()
}
