package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/mbes-planner/internal/domain/catalogue"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/survey"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save persists a new plan record
func (r *GormPlanRepository) Save(ctx context.Context, record *history.PlanRecord) error {
	model, err := r.recordToModel(record)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create plan: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id history.PlanID) (*history.PlanRecord, error) {
	var model SurveyPlanModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &history.ErrPlanNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find plan: %w", result.Error)
	}

	return r.modelToRecord(&model)
}

// List returns the newest plans first. A non-positive limit returns all plans.
func (r *GormPlanRepository) List(ctx context.Context, limit int) ([]*history.PlanRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []SurveyPlanModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	records := make([]*history.PlanRecord, len(models))
	for i := range models {
		record, err := r.modelToRecord(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert plan model: %w", err)
		}
		records[i] = record
	}

	return records, nil
}

func (r *GormPlanRepository) recordToModel(record *history.PlanRecord) (*SurveyPlanModel, error) {
	plan := record.Plan()
	payload, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	model := &SurveyPlanModel{
		ID:             record.ID().String(),
		CreatedAt:      record.CreatedAt(),
		Label:          record.Label(),
		SurveyOrder:    record.Order(),
		Depth:          plan.SpeedPlan.Inputs.Depth,
		Coverage:       plan.SpeedPlan.Coverage.Effective,
		MaxKnots:       plan.SpeedPlan.Speeds.Max.Knots,
		OptimumKnots:   plan.SpeedPlan.Speeds.Optimum.Knots,
		LineCount:      plan.Estimate.LineCount,
		Days:           plan.Estimate.Days,
		DeadTime:       record.DeadTime().Value,
		DeadTimeSource: string(record.DeadTime().Source),
		Sonar:          record.DeadTime().Sonar,
		BottomType:     record.BottomType(),
		Payload:        string(payload),
	}
	if cost, ok := plan.Estimate.FuelCost.Get(); ok {
		model.FuelCost = &cost
	}

	return model, nil
}

func (r *GormPlanRepository) modelToRecord(model *SurveyPlanModel) (*history.PlanRecord, error) {
	id, err := history.ParsePlanID(model.ID)
	if err != nil {
		return nil, err
	}

	var plan survey.SurveyPlan
	if err := json.Unmarshal([]byte(model.Payload), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan %s: %w", model.ID, err)
	}

	deadTime := catalogue.ResolvedDeadTime{
		Value:  model.DeadTime,
		Source: catalogue.DeadTimeSource(model.DeadTimeSource),
		Sonar:  model.Sonar,
	}

	return history.ReconstructPlanRecord(id, model.CreatedAt, model.Label, deadTime, model.BottomType, &plan), nil
}
