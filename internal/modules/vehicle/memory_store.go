package vehicle

import (
	"context"
	"errors"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryStore struct {
	items *storage.Collection[Vehicle]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: storage.NewCollection(func(v Vehicle) types.ID { return v.ID })}
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Vehicle, error) {
	return s.items.List(func(v Vehicle) bool {
		return f.OwnerID == "" || v.OwnerID == f.OwnerID
	}), nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Vehicle, error) {
	v, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &v, err
}

func (s *MemoryStore) Upsert(_ context.Context, v *Vehicle) error {
	s.items.Upsert(*v)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	if err := s.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
