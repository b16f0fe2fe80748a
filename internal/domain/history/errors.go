package history

import "fmt"

// ErrInvalidPlan reports a plan record that cannot be stored or looked up
type ErrInvalidPlan struct {
	Field  string
	Reason string
}

func (e *ErrInvalidPlan) Error() string {
	return fmt.Sprintf("invalid plan: %s - %s", e.Field, e.Reason)
}

// ErrPlanNotFound is returned when no plan has the requested ID
type ErrPlanNotFound struct {
	ID string
}

func (e *ErrPlanNotFound) Error() string {
	return fmt.Sprintf("plan not found: id=%s", e.ID)
}
