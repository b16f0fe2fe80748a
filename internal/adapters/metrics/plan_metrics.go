package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// PlanMetricsCollector records the outcome of every computed speed plan.
// It satisfies planning.PlanObserver.
type PlanMetricsCollector struct {
	plansTotal     *prometheus.CounterVec
	detectionTotal *prometheus.CounterVec
	maxSpeed       prometheus.Histogram
	pingInterval   prometheus.Histogram
}

// NewPlanMetricsCollector creates a new plan metrics collector
func NewPlanMetricsCollector() *PlanMetricsCollector {
	return &PlanMetricsCollector{
		plansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "speed_plans_total",
				Help:      "Total number of speed plans computed by survey order",
			},
			[]string{"order"},
		),

		detectionTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "detection_checks_total",
				Help:      "Feature detection outcomes by status",
			},
			[]string{"status"},
		),

		maxSpeed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "max_speed_knots",
				Help:      "Distribution of the maximum vessel speed of computed plans",
				Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 12, 15, 20},
			},
		),

		pingInterval: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "ping_interval_seconds",
				Help:      "Distribution of the ping interval of computed plans",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
			},
		),
	}
}

// Register registers all plan metrics with the Prometheus registry
func (c *PlanMetricsCollector) Register() error {
	return register(c.plansTotal, c.detectionTotal, c.maxSpeed, c.pingInterval)
}

// ObserveSpeedPlan implements planning.PlanObserver
func (c *PlanMetricsCollector) ObserveSpeedPlan(plan *survey.SpeedPlan) {
	if plan == nil {
		return
	}
	c.plansTotal.WithLabelValues(plan.Order).Inc()
	c.detectionTotal.WithLabelValues(string(plan.Detection.Status)).Inc()
	c.maxSpeed.Observe(plan.Speeds.Max.Knots)
	c.pingInterval.Observe(plan.Timing.Interval)
}
