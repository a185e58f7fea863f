package card

import (
	"context"
	"sync"
)

// Memory is a Store kept in process. The server runs on Postgres; Memory
// backs the handler and API tests.
type Memory struct {
	mu    sync.RWMutex
	cards []Card
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) List(_ context.Context) ([]Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Card, len(m.cards))
	copy(out, m.cards)
	return out, nil
}

func (m *Memory) Replace(_ context.Context, cards []Card) ([]Card, error) {
	next := make([]Card, len(cards))
	for i, c := range cards {
		c.ID = i + 1
		next[i] = c
	}

	m.mu.Lock()
	m.cards = next
	m.mu.Unlock()

	out := make([]Card, len(next))
	copy(out, next)
	return out, nil
}
