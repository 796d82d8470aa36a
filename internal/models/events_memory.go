package models

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryEventRepo keeps events in process. Used for local runs and tests.
type MemoryEventRepo struct {
	mu   sync.RWMutex
	data map[string]Event
	now  func() time.Time
}

func NewMemoryEventRepo() *MemoryEventRepo {
	return &MemoryEventRepo{data: make(map[string]Event), now: time.Now}
}

func (m *MemoryEventRepo) CreateEvent(_ context.Context, event *Event) (*Event, error) {
	e := *event
	e.ID = uuid.New().String()
	e.Stamp(m.now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[e.ID] = e
	out := e
	return &out, nil
}

func (m *MemoryEventRepo) ListEvents(_ context.Context) ([]*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*Event, 0, len(m.data))
	for _, e := range m.data {
		e := e
		events = append(events, &e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (m *MemoryEventRepo) GetEventByID(_ context.Context, id string) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return &e, nil
}

func (m *MemoryEventRepo) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return ErrEventNotFound
	}
	delete(m.data, id)
	return nil
}

func (m *MemoryEventRepo) Close(_ context.Context) error {
	return nil
}
