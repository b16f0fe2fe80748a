package history

import "context"

// PlanRepository stores survey plans for later review
type PlanRepository interface {
	// Save persists a new plan record
	Save(ctx context.Context, record *PlanRecord) error

	// FindByID retrieves a plan by its ID
	FindByID(ctx context.Context, id PlanID) (*PlanRecord, error)

	// List returns the most recent plans first, at most limit of them
	List(ctx context.Context, limit int) ([]*PlanRecord, error)
}
