package persistence

import (
	"time"
)

// SurveyPlanModel represents the survey_plans table. The summary columns are
// denormalised from Payload so listings do not need to decode every plan.
type SurveyPlanModel struct {
	ID             string    `gorm:"column:id;primaryKey;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
	Label          string    `gorm:"column:label"`
	SurveyOrder    string    `gorm:"column:survey_order;not null"`
	Depth          float64   `gorm:"column:depth_m;not null"`
	Coverage       float64   `gorm:"column:coverage_pct;not null"`
	MaxKnots       float64   `gorm:"column:max_knots;not null"`
	OptimumKnots   float64   `gorm:"column:optimum_knots;not null"`
	LineCount      int       `gorm:"column:line_count;not null"`
	Days           float64   `gorm:"column:days;not null"`
	FuelCost       *float64  `gorm:"column:fuel_cost"`
	DeadTime       float64   `gorm:"column:dead_time_s;not null"`
	DeadTimeSource string    `gorm:"column:dead_time_source;not null"`
	Sonar          string    `gorm:"column:sonar"`
	BottomType     string    `gorm:"column:bottom_type;not null"`
	Payload        string    `gorm:"column:payload;type:text;not null"` // JSON as text
}

func (SurveyPlanModel) TableName() string {
	return "survey_plans"
}
