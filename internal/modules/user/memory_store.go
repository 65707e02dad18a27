package user

import (
	"context"
	"errors"
	"strings"
	"sync"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryStore struct {
	mu    sync.Mutex
	items *storage.Collection[User]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: storage.NewCollection(func(u User) types.ID { return u.ID })}
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]User, error) {
	return s.items.List(func(u User) bool {
		return f.Role == "" || u.Role == f.Role
	}), nil
}

func (s *MemoryStore) Get(_ context.Context, id types.ID) (*User, error) {
	u, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &u, err
}

func (s *MemoryStore) Upsert(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := s.items.List(func(other User) bool {
		return other.ID != u.ID && strings.EqualFold(other.Email, u.Email)
	})
	if len(taken) > 0 {
		return ErrEmailTaken
	}
	s.items.Upsert(*u)
	return nil
}

func (s *MemoryStore) AddPoints(_ context.Context, id types.ID, delta int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	u.TotalPoints = max(0, u.TotalPoints+delta)
	s.items.Upsert(u)
	return &u, nil
}

func (s *MemoryStore) Delete(_ context.Context, id types.ID) error {
	if err := s.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
