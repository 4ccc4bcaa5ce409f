package store

import (
	"context"
	"fmt"
	"sync"
)

// SnapshotStore keeps the whole dataset in memory and hands every committed
// version to persist before making it visible.
type SnapshotStore struct {
	mu      sync.RWMutex
	data    Dataset
	persist func(Dataset) error
	closed  bool
}

// NewMemory returns a store with no persistence.
func NewMemory() *SnapshotStore {
	return newSnapshotStore(Dataset{}, func(Dataset) error { return nil })
}

func newSnapshotStore(initial Dataset, persist func(Dataset) error) *SnapshotStore {
	initial.normalize()
	return &SnapshotStore{data: initial, persist: persist}
}

func (s *SnapshotStore) Read(ctx context.Context) (Dataset, error) {
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Dataset{}, ErrClosed
	}
	return s.data.Clone(), nil
}

func (s *SnapshotStore) Update(ctx context.Context, fn func(*Dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := s.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	next.normalize()
	if err := s.persist(next); err != nil {
		return fmt.Errorf("persist dataset: %w", err)
	}
	s.data = next
	return nil
}

func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
