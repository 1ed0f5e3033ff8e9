package storage

import (
	"context"
	"sync"

	"aocnotify/internal/leaderboard"
)

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	snap   *leaderboard.Snapshot
	saves  int
	closed bool
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) (*leaderboard.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.snap == nil {
		return &leaderboard.Snapshot{}, nil
	}
	return m.snap, nil
}

func (m *Memory) Save(ctx context.Context, snap *leaderboard.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.snap = snap
	m.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
