package location

import (
	"context"
	"sync"

	"garagehub/internal/types"
)

// MemoryIndex is an Index that scans every member with DistanceKm.
type MemoryIndex struct {
	mu     sync.RWMutex
	points map[types.ID]types.Point
	order  []types.ID
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{points: make(map[types.ID]types.Point)}
}

func (m *MemoryIndex) Add(_ context.Context, id types.ID, p types.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.points[id]; !ok {
		m.order = append(m.order, id)
	}
	m.points[id] = p
	return nil
}

func (m *MemoryIndex) Remove(_ context.Context, id types.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.points[id]; !ok {
		return nil
	}
	delete(m.points, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryIndex) Within(_ context.Context, origin types.Point, radiusKm float64) ([]Nearby, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Nearby
	for _, id := range m.order {
		d := DistanceKm(origin, m.points[id])
		if d <= radiusKm {
			out = append(out, Nearby{ID: id, Distance: d})
		}
	}
	SortByDistance(out, func(n Nearby) float64 { return n.Distance })
	return out, nil
}
