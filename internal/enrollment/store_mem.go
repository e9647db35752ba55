package enrollment

import (
	"context"
	"sync"

	"github.com/campusops/gradebook/internal/apperr"
)

type memoryStore struct {
	mu   sync.RWMutex
	byID map[string]Enrollment
}

func NewMemoryStore() Store {
	return &memoryStore{byID: map[string]Enrollment{}}
}

func (m *memoryStore) FindByID(_ context.Context, id string) (Enrollment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byID[id]
	if !ok {
		return Enrollment{}, apperr.NotFound("enrollment")
	}
	return e, nil
}

func (m *memoryStore) ExistsByID(_ context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byID[id]
	return ok, nil
}

func (m *memoryStore) Save(_ context.Context, e Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[e.ID] = e
	return nil
}
