package journal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rustyeddy/tradelog/calendar"
	"github.com/rustyeddy/tradelog/trade"
)

// Memory is an in-memory Store. Trades are values, so every read hands
// back a copy.
type Memory struct {
	mu    sync.RWMutex
	order []string
	data  map[string]trade.Trade
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: make(map[string]trade.Trade)}
}

// Insert returns ErrDuplicateKey if the ID exists.
func (m *Memory) Insert(_ context.Context, t trade.Trade) error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty trade id", ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[t.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, t.ID)
	}
	m.data[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}

// InsertBulk adds every trade or none of them.
func (m *Memory) InsertBulk(_ context.Context, trades []trade.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	batch := make(map[string]struct{}, len(trades))
	for _, t := range trades {
		if t.ID == "" {
			return fmt.Errorf("%w: empty trade id", ErrInvalidInput)
		}
		if _, exists := m.data[t.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, t.ID)
		}
		if _, exists := batch[t.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, t.ID)
		}
		batch[t.ID] = struct{}{}
	}

	for _, t := range trades {
		m.data[t.ID] = t
		m.order = append(m.order, t.ID)
	}
	return nil
}

func (m *Memory) Update(_ context.Context, t trade.Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[t.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	m.data[t.ID] = t
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.data, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (trade.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.data[id]
	if !ok {
		return trade.Trade{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

func (m *Memory) List(_ context.Context) ([]trade.Trade, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]trade.Trade, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.data[id])
	}
	return out, nil
}

func (m *Memory) ListBetween(_ context.Context, start, end string) ([]trade.Trade, error) {
	return m.filter(func(t trade.Trade) bool {
		return (start == "" || t.Date >= start) && (end == "" || t.Date <= end)
	}), nil
}

func (m *Memory) ListByDay(ctx context.Context, day string) ([]trade.Trade, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.TradesOn(all, day), nil
}

func (m *Memory) Symbols(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, t := range m.data {
		if !seen[t.Symbol] {
			seen[t.Symbol] = true
			out = append(out, t.Symbol)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) filter(keep func(trade.Trade) bool) []trade.Trade {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []trade.Trade
	for _, id := range m.order {
		if t := m.data[id]; keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (m *Memory) Close() error { return nil }
