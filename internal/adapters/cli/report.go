package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrescamacho/mbes-planner/internal/application/planning"
	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// writeSpeedReport prints the headline metrics followed by the step-by-step
// derivation of the maximum speed
func writeSpeedReport(w io.Writer, resp *planning.SpeedPlanResponse) {
	p := resp.Plan
	in := p.Inputs
	t := p.Timing
	c := p.Coverage

	fmt.Fprintf(w, "Max Speed:        %.3f m/s (%.2f knots)\n", p.Speeds.Max.MetresPerSecond, p.Speeds.Max.Knots)
	fmt.Fprintf(w, "Optimum Speed:    %.3f m/s (%.2f knots, safety factor %.2f)\n",
		p.Speeds.Optimum.MetresPerSecond, p.Speeds.Optimum.Knots, p.Speeds.SafetyFactor)
	fmt.Fprintf(w, "Minimum Speed:    %.3f m/s (%.2f knots)\n", p.Speeds.Minimum.MetresPerSecond, p.Speeds.Minimum.Knots)
	fmt.Fprintf(w, "Advance per Ping: %.1f%% of footprint\n", c.AdvancePercent)
	fmt.Fprintf(w, "Swath Width:      %.1f m, line spacing %.1f m (%.0f%% overlap)\n",
		p.SwathWidth, c.LineSpacing, c.OverlapPercent)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== INPUTS ===")
	fmt.Fprintf(w, "Depth D = %.3f m\n", in.Depth)
	fmt.Fprintf(w, "Total swath = %.3f° (±%.3f°)\n", in.SwathAngle, t.HalfAngle)
	fmt.Fprintf(w, "Tx beam width (along-track) φ_T = %.3f°\n", in.BeamWidth)
	fmt.Fprintf(w, "Sound speed c = %.3f m/s\n", in.SoundSpeed)
	fmt.Fprintf(w, "Bathymetric coverage = %.1f%%", c.Effective)
	if c.Effective != c.Requested {
		fmt.Fprintf(w, " (requested %.1f%%)", c.Requested)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "→ Advance per ping ≈ %.1f%% of footprint\n", c.AdvancePercent)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sonar system = %s\n", orNone(resp.DeadTime.Sonar))
	fmt.Fprintf(w, "Dead-time mode = %s\n", deadTimeMode(resp.DeadTime.Source))
	fmt.Fprintf(w, "Dead time Δt = %.3f s\n\n", t.DeadTime)

	fmt.Fprintln(w, "=== STEP 1 — Slant range to outer beam ===")
	fmt.Fprintln(w, "R = D / cos(θ)")
	fmt.Fprintf(w, "  = %.3f / cos(%.3f°)\n", in.Depth, t.HalfAngle)
	fmt.Fprintf(w, "  = %.3f m\n\n", t.SlantRange)

	fmt.Fprintln(w, "=== STEP 2 — Two-way travel time & ping cycle ===")
	fmt.Fprintln(w, "t_2way = 2R / c")
	fmt.Fprintf(w, "       = 2×%.3f / %.3f\n", t.SlantRange, in.SoundSpeed)
	fmt.Fprintf(w, "       = %.3f s\n", t.TwoWayTravelTime)
	fmt.Fprintln(w, "T = t_2way + Δt")
	fmt.Fprintf(w, "  = %.3f + %.3f\n", t.TwoWayTravelTime, t.DeadTime)
	fmt.Fprintf(w, "  = %.3f s\n\n", t.Interval)

	fmt.Fprintln(w, "=== STEP 3 — Along-track footprint length ===")
	fmt.Fprintln(w, "L = 2D · tan(φ_T / 2)")
	fmt.Fprintf(w, "  = 2×%.3f×tan(%.3f°)\n", in.Depth, in.BeamWidth/2)
	fmt.Fprintf(w, "  = %.3f m\n\n", p.Footprint)

	fmt.Fprintln(w, "=== STEP 4 — Allowed advance per ping ===")
	fmt.Fprintln(w, "d = (advance fraction) × L")
	fmt.Fprintf(w, "  = %.3f × %.3f\n", c.AdvanceFraction, p.Footprint)
	fmt.Fprintf(w, "  = %.3f m\n\n", c.AlongStep)

	fmt.Fprintln(w, "=== STEP 5 — Maximum vessel speed ===")
	fmt.Fprintln(w, "v = d / T")
	fmt.Fprintf(w, "  = %.3f / %.3f\n", c.AlongStep, t.Interval)
	fmt.Fprintf(w, "  = %.3f m/s\n", p.Speeds.Max.MetresPerSecond)
	fmt.Fprintf(w, "  = %.3f knots\n\n", p.Speeds.Max.Knots)

	fmt.Fprintln(w, "=== QUALITY CHECK ===")
	fmt.Fprintf(w, "Survey order = %s\n", p.Order)
	if tvu, ok := p.TVU.Get(); ok {
		fmt.Fprintf(w, "TVU at %.1f m = ±%.3f m\n", in.Depth, tvu)
	} else {
		fmt.Fprintln(w, "TVU = not defined for this order")
	}
	writeDetection(w, p.Detection, resp.BottomType)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FINAL RESULT:")
	fmt.Fprintf(w, "Max vessel speed ≈ %.3f m/s ≈ %.2f knots\n", p.Speeds.Max.MetresPerSecond, p.Speeds.Max.Knots)

	writeWarnings(w, resp.Warnings)
}

func writeDetection(w io.Writer, d survey.DetectionCheck, bottom catalogue.BottomType) {
	fmt.Fprintf(w, "Detection limit ≈ %.3f m\n", d.Limit)
	req, ok := d.Requirement.Get()
	if !ok {
		fmt.Fprintln(w, "Feature detection = not required for this order")
		return
	}
	fmt.Fprintf(w, "Feature detection requirement = %.3f m (bottom: %s, factor %.2f)\n", req, bottom.Name, d.BottomFactor)
	fmt.Fprintf(w, "Feature detection = %s\n", strings.ToUpper(string(d.Status)))
}

// writeSurveyReport prints the planner aggregates below the speed report
func writeSurveyReport(w io.Writer, resp *planning.SurveyPlanResponse) {
	writeSpeedReport(w, &planning.SpeedPlanResponse{
		Plan:       resp.Plan.SpeedPlan,
		DeadTime:   resp.DeadTime,
		BottomType: resp.BottomType,
	})

	a := resp.Plan.Area
	e := resp.Plan.Estimate
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== SURVEY PLAN ===")
	fmt.Fprintf(w, "Area = %.0f m × %.0f m\n", a.AreaLength, a.AreaWidth)
	fmt.Fprintf(w, "Planning speed = %s tier, %.3f m/s (%.2f knots)\n",
		a.SpeedTier, e.PlanningSpeed.MetresPerSecond, e.PlanningSpeed.Knots)
	fmt.Fprintf(w, "Survey lines = %d at %.1f m spacing\n", e.LineCount, e.LineSpacing)
	fmt.Fprintf(w, "Total track = %.2f km\n", e.TotalTrackKm)
	fmt.Fprintf(w, "Sailing time = %.2f h\n", e.SailingHours)
	fmt.Fprintf(w, "With overheads = %.2f h (weather %.0f%%, line changes %.0f%%)\n",
		e.EffectiveHours, a.WeatherPct, a.OverheadPct)
	fmt.Fprintf(w, "Survey days = %.2f at %.1f h/day\n", e.Days, a.DailyHours)
	if volume, ok := e.FuelVolume.Get(); ok {
		fmt.Fprintf(w, "Fuel = %.0f L", volume)
		if cost, ok := e.FuelCost.Get(); ok {
			fmt.Fprintf(w, ", cost %.2f", cost)
		}
		fmt.Fprintln(w)
	}
	if resp.PlanID != "" {
		fmt.Fprintf(w, "Saved as plan %s\n", resp.PlanID)
	}

	writeWarnings(w, resp.Warnings)
}

func writeWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Warnings:")
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
}

func deadTimeMode(source catalogue.DeadTimeSource) string {
	if source == catalogue.DeadTimeFromPreset {
		return "AUTO (preset)"
	}
	return "MANUAL"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
