package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
)

// Slot is the storage key holding the serialized cart.
const Slot = "cart"

// Storage is a client-bound byte store: one per shopper.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// Store reads and writes the cart slot of a Storage.
type Store struct {
	storage Storage
	log     logrus.FieldLogger
}

func NewStore(storage Storage, log logrus.FieldLogger) *Store {
	return &Store{storage: storage, log: log}
}

// Load returns the stored items. A missing or unreadable slot is an empty cart.
func (s *Store) Load(ctx context.Context) []Item {
	data, ok := s.storage.Get(ctx, Slot)
	if !ok || len(data) == 0 {
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.WithError(err).Debug("discarding malformed cart")
		return []Item{}
	}
	if items == nil {
		return []Item{}
	}
	return items
}

func (s *Store) Save(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.storage.Set(ctx, Slot, data); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Remove(ctx, Slot); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	return nil
}

// SessionStorage keeps slots in the caller's scs session. The request
// context must have gone through the session's LoadAndSave.
type SessionStorage struct {
	Session *scs.SessionManager
}

func (s SessionStorage) Get(ctx context.Context, key string) ([]byte, bool) {
	b := s.Session.GetBytes(ctx, key)
	return b, b != nil
}

func (s SessionStorage) Set(ctx context.Context, key string, data []byte) error {
	s.Session.Put(ctx, key, data)
	return nil
}

func (s SessionStorage) Remove(ctx context.Context, key string) error {
	s.Session.Remove(ctx, key)
	return nil
}

// MemoryStorage is a single process-wide set of slots.
type MemoryStorage struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.slots[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

func (m *MemoryStorage) Set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}
