// Package history keeps computed survey plans so they can be reviewed later
package history

import (
	"time"

	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// PlanRecord is a survey plan together with the choices it was computed from
type PlanRecord struct {
	id         PlanID
	createdAt  time.Time
	label      string
	deadTime   catalogue.ResolvedDeadTime
	bottomType string
	plan       *survey.SurveyPlan
}

// NewPlanRecord creates a record for a freshly computed plan
func NewPlanRecord(
	createdAt time.Time,
	label string,
	deadTime catalogue.ResolvedDeadTime,
	bottomType string,
	plan *survey.SurveyPlan,
) (*PlanRecord, error) {
	if plan == nil || plan.SpeedPlan == nil {
		return nil, &ErrInvalidPlan{Field: "plan", Reason: "survey plan cannot be empty"}
	}
	if createdAt.IsZero() {
		return nil, &ErrInvalidPlan{Field: "created_at", Reason: "timestamp cannot be zero"}
	}

	return &PlanRecord{
		id:         NewPlanID(),
		createdAt:  createdAt,
		label:      label,
		deadTime:   deadTime,
		bottomType: bottomType,
		plan:       plan,
	}, nil
}

// ReconstructPlanRecord rebuilds a record from persistence
func ReconstructPlanRecord(
	id PlanID,
	createdAt time.Time,
	label string,
	deadTime catalogue.ResolvedDeadTime,
	bottomType string,
	plan *survey.SurveyPlan,
) *PlanRecord {
	return &PlanRecord{
		id:         id,
		createdAt:  createdAt,
		label:      label,
		deadTime:   deadTime,
		bottomType: bottomType,
		plan:       plan,
	}
}

func (r *PlanRecord) ID() PlanID { return r.id }
func (r *PlanRecord) CreatedAt() time.Time { return r.createdAt }
func (r *PlanRecord) Label() string { return r.label }
func (r *PlanRecord) DeadTime() catalogue.ResolvedDeadTime { return r.deadTime }
func (r *PlanRecord) BottomType() string { return r.bottomType }
func (r *PlanRecord) Plan() *survey.SurveyPlan { return r.plan }

// Order returns the survey order the plan was checked against
func (r *PlanRecord) Order() string {
	return r.plan.SpeedPlan.Order
}
