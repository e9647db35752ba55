package evaluation

import (
	"context"
	"sync"

	"github.com/campusops/gradebook/internal/apperr"
)

// memoryStore keeps evaluations in a map guarded by a RWMutex. Listing
// follows insertion order so test output stays deterministic.
type memoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Evaluation
	order []string
}

func NewMemoryStore() Store {
	return &memoryStore{byID: map[string]Evaluation{}}
}

func (m *memoryStore) FindAll(_ context.Context) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Evaluation, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *memoryStore) FindByID(_ context.Context, id string) (Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	if !ok {
		return Evaluation{}, apperr.NotFound("evaluation")
	}
	return e, nil
}

func (m *memoryStore) FindBySectionID(_ context.Context, sectionID string) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Evaluation
	for _, id := range m.order {
		if e := m.byID[id]; e.SectionID == sectionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, e Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.byID[e.ID] = e
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
		return apperr.NotFound("evaluation")
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
