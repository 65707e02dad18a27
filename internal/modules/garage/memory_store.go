package garage

import (
	"context"
	"errors"
	"strings"

	"garagehub/internal/storage"
	"garagehub/internal/types"
)

type MemoryShopStore struct {
	items *storage.Collection[Shop]
}

func NewMemoryShopStore() *MemoryShopStore {
	return &MemoryShopStore{items: storage.NewCollection(func(s Shop) types.ID { return s.ID })}
}

func (m *MemoryShopStore) List(_ context.Context, f ShopFilter) ([]Shop, error) {
	return m.items.List(func(s Shop) bool {
		return f.City == "" || strings.EqualFold(s.City, f.City)
	}), nil
}

func (m *MemoryShopStore) Get(_ context.Context, id types.ID) (*Shop, error) {
	s, err := m.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (m *MemoryShopStore) Upsert(_ context.Context, s *Shop) error {
	m.items.Upsert(*s)
	return nil
}

func (m *MemoryShopStore) Delete(_ context.Context, id types.ID) error {
	if err := m.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}

type MemoryIssueStore struct {
	items *storage.Collection[Issue]
}

func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{items: storage.NewCollection(func(i Issue) types.ID { return i.ID })}
}

func (m *MemoryIssueStore) List(_ context.Context, f IssueFilter) ([]Issue, error) {
	return m.items.List(func(i Issue) bool {
		return f.Fuel == "" || i.CompatibleWith(f.Fuel)
	}), nil
}

func (m *MemoryIssueStore) Get(_ context.Context, id types.ID) (*Issue, error) {
	i, err := m.items.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return &i, err
}

func (m *MemoryIssueStore) Upsert(_ context.Context, i *Issue) error {
	m.items.Upsert(*i)
	return nil
}

func (m *MemoryIssueStore) Delete(_ context.Context, id types.ID) error {
	if err := m.items.Delete(id); errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return nil
}
