package history

import (
	"fmt"

	"github.com/google/uuid"
)

// PlanID identifies a stored survey plan
type PlanID struct {
	value string
}

// NewPlanID creates a new PlanID with a generated UUID
func NewPlanID() PlanID {
	return PlanID{value: uuid.New().String()}
}

// ParsePlanID creates a PlanID from an existing UUID string
func ParsePlanID(id string) (PlanID, error) {
	if id == "" {
		return PlanID{}, &ErrInvalidPlan{Field: "id", Reason: "plan id cannot be empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return PlanID{}, &ErrInvalidPlan{Field: "id", Reason: fmt.Sprintf("invalid plan id format: %v", err)}
	}
	return PlanID{value: id}, nil
}

func (p PlanID) String() string {
	return p.value
}

// IsZero checks if the PlanID is uninitialized
func (p PlanID) IsZero() bool {
	return p.value == ""
}
