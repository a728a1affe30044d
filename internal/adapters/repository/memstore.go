package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/collections/pkg/metrics"
)

const defaultCollectionName = "records"

// MemoryStore is an in-memory, insertion-ordered Store.
//
// Ids come from a counter that only moves forward, so an id is never handed out twice,
// even after deletes.
type MemoryStore[T Record] struct {
	mu      sync.RWMutex
	name    string
	records []T
	nextID  int
}

var _ Store[Record] = (*MemoryStore[Record])(nil)

// NewMemoryStore creates an empty store whose first id is 1, then applies opts.
func NewMemoryStore[T Record](opts ...Option[T]) *MemoryStore[T] {
	s := &MemoryStore[T]{
		name:   defaultCollectionName,
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateCollectionSize(s.name, len(s.records))
	return s
}

// Name returns the collection name.
func (s *MemoryStore[T]) Name() string { return s.name }

// List returns a copy of the records in insertion order. Never nil.
func (s *MemoryStore[T]) List(_ context.Context) []T {
	defer s.observe("list", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Create assigns the next id, appends the record built with it and returns it.
func (s *MemoryStore[T]) Create(_ context.Context, build func(id int) T) T {
	defer s.observe("create", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	rec := build(id)
	s.records = append(s.records, rec)
	metrics.UpdateCollectionSize(s.name, len(s.records))
	return rec
}

// Delete rebuilds the collection without the records matching id.
func (s *MemoryStore[T]) Delete(_ context.Context, id int) error {
	defer s.observe("delete", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]T, 0, len(s.records))
	for _, r := range s.records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(s.records) {
		return ErrNotFound
	}
	s.records = kept
	metrics.UpdateCollectionSize(s.name, len(s.records))
	return nil
}

// Count returns the number of records.
func (s *MemoryStore[T]) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// NextID returns the id the next Create will assign.
func (s *MemoryStore[T]) NextID(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

func (s *MemoryStore[T]) observe(op string, start time.Time) {
	metrics.RecordCollectionLatency(s.name, op, float64(time.Since(start).Microseconds())/1000)
}
