package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/mbes-planner/internal/domain/history"
)

// MockPlanRepository is an in-memory implementation of PlanRepository for testing
type MockPlanRepository struct {
	mu      sync.Mutex
	Plans   map[string]*history.PlanRecord
	SaveErr error
}

// NewMockPlanRepository creates a new mock plan repository
func NewMockPlanRepository() *MockPlanRepository {
	return &MockPlanRepository{
		Plans: make(map[string]*history.PlanRecord),
	}
}

// Save stores the record in memory
func (m *MockPlanRepository) Save(ctx context.Context, record *history.PlanRecord) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans[record.ID().String()] = record
	return nil
}

// FindByID returns the stored record or ErrPlanNotFound
func (m *MockPlanRepository) FindByID(ctx context.Context, id history.PlanID) (*history.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.Plans[id.String()]
	if !ok {
		return nil, &history.ErrPlanNotFound{ID: id.String()}
	}
	return record, nil
}

// List returns the newest records first
func (m *MockPlanRepository) List(ctx context.Context, limit int) ([]*history.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]*history.PlanRecord, 0, len(m.Plans))
	for _, r := range m.Plans {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt().After(records[j].CreatedAt())
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Count returns the number of stored plans
func (m *MockPlanRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Plans)
}

var _ history.PlanRepository = (*MockPlanRepository)(nil)
