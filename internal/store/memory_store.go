package store

import (
	"context"
	"sync"

	"github.com/mpryce/ttedit/internal/model"
)

// MemoryStore is the default in-process event store for the stub server.
type MemoryStore struct {
	mu     sync.Mutex
	series map[string][]model.EventRecord
	nextID int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		series: make(map[string][]model.EventRecord),
		nextID: 1,
	}
}

// Seed loads a series' events, assigning identifiers where missing. It is
// meant for startup fixtures.
func (s *MemoryStore) Seed(seriesID string, events []model.EventRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[seriesID] = s.assignIDs(events)
}

// ListBySeries retrieves a series' events in order.
func (s *MemoryStore) ListBySeries(_ context.Context, seriesID string) ([]model.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]model.EventRecord, len(s.series[seriesID]))
	copy(events, s.series[seriesID])
	return events, nil
}

// ReplaceSeries swaps the series' whole event set for the submitted one.
func (s *MemoryStore) ReplaceSeries(_ context.Context, seriesID string, events []model.EventRecord) ([]model.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.assignIDs(events)
	s.series[seriesID] = stored
	out := make([]model.EventRecord, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) assignIDs(events []model.EventRecord) []model.EventRecord {
	out := make([]model.EventRecord, len(events))
	for i, e := range events {
		if e.ID == 0 {
			e.ID = s.nextID
			s.nextID++
		} else if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
		out[i] = e
	}
	return out
}
