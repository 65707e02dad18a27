package repair

import (
	"context"
	"errors"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryStore struct {
	items *storage.Collection[Transaction]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: storage.NewCollection(func(t Transaction) types.ID { return t.ID })}
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Transaction, error) {
	return s.items.List(func(t Transaction) bool {
		return (f.MechanicID == "" || t.Provider.MechanicID == f.MechanicID) &&
			(f.OwnerID == "" || t.Counterparty.OwnerID == f.OwnerID) &&
			(f.VehicleID == "" || t.VehicleID == f.VehicleID)
	}), nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*Transaction, error) {
	t, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &t, err
}

func (s *MemoryStore) Upsert(_ context.Context, t *Transaction) error {
	s.items.Upsert(*t)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	if err := s.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
