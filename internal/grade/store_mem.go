package grade

import (
	"context"
	"sync"

	"github.com/campusops/gradebook/internal/apperr"
	"github.com/campusops/gradebook/internal/evaluation"
)

// memoryStore keeps records in a map guarded by a RWMutex. The section
// join is resolved against the evaluation store. Listing follows
// insertion order for deterministic test output.
type memoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Record
	order []string
	evals evaluation.Store
}

func NewMemoryStore(evals evaluation.Store) Store {
	return &memoryStore{byID: map[string]Record{}, evals: evals}
}

func (m *memoryStore) FindAll(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return Record{}, apperr.NotFound("grade record")
	}
	return r, nil
}

func (m *memoryStore) FindByEnrollmentID(_ context.Context, enrollmentID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, id := range m.order {
		if r := m.byID[id]; r.EnrollmentID == enrollmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) FindBySectionID(ctx context.Context, sectionID string) ([]Record, error) {
	evals, err := m.evals.FindBySectionID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	inSection := make(map[string]bool, len(evals))
	for _, e := range evals {
		inSection[e.ID] = true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, id := range m.order {
		if r := m.byID[id]; inSection[r.EvaluationID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) ExistsByEvaluationAndEnrollment(_ context.Context, evaluationID, enrollmentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.EvaluationID == evaluationID && r.EnrollmentID == enrollmentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) ExistsByEvaluationID(_ context.Context, evaluationID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.EvaluationID == evaluationID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[rec.ID]; !ok {
		// mirror the storage-level uniqueness constraint on inserts
		for _, r := range m.byID {
			if r.EvaluationID == rec.EvaluationID && r.EnrollmentID == rec.EnrollmentID {
				return apperr.Conflict("grade already recorded for this evaluation and enrollment")
			}
		}
		m.order = append(m.order, rec.ID)
	}
	m.byID[rec.ID] = rec
	return nil
}

func (m *memoryStore) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memoryStore) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperr.NotFound("grade record")
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
