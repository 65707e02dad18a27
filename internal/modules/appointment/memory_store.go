package appointment

import (
	"context"
	"errors"
	"sync"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryStore struct {
	mu     sync.Mutex
	items  *storage.Collection[Appointment]
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: storage.NewCollection(func(a Appointment) types.ID { return a.ID })}
}

func (s *MemoryStore) Create(_ context.Context, a *Appointment) error {
	s.items.Upsert(*a)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Appointment, error) {
	a, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Appointment, error) {
	return s.items.List(func(a Appointment) bool {
		return (f.MechanicID == "" || a.MechanicID == f.MechanicID) &&
			(f.OwnerID == "" || a.OwnerID == f.OwnerID)
	}), nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id types.ID, from, to Status, version int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.items.Get(id)
	if err != nil || a.Status != from || a.StatusVersion != version {
		return false, nil
	}
	a.Status = to
	a.StatusVersion++
	s.items.Upsert(a)
	return true, nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = int64(len(s.events) + 1)
	s.events = append(s.events, *e)
	return nil
}

// Events returns the recorded transitions for one appointment.
func (s *MemoryStore) Events(id types.ID) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if e.AppointmentID == id {
			out = append(out, e)
		}
	}
	return out
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	if err := s.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
