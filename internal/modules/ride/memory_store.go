package ride

import (
	"context"
	"errors"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryStore struct {
	items *storage.Collection[Ride]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: storage.NewCollection(func(r Ride) types.ID { return r.ID })}
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Ride, error) {
	return s.items.List(func(r Ride) bool {
		return f.RiderID == "" || r.RiderID == f.RiderID
	}), nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Ride, error) {
	r, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &r, err
}

func (s *MemoryStore) Upsert(_ context.Context, r *Ride) error {
	s.items.Upsert(*r)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	if err := s.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
