package storage

import (
	"sync"

	"github.com/subwaylabs/traintrack/model"
)

// In memory implementation of Store below. Used in tests.

type MemoryStore struct {
	mutex    sync.Mutex
	snapshot []model.TripUpdate
	history  []model.TripUpdate
	recorded map[model.ObservationKey]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshot: []model.TripUpdate{},
		history:  []model.TripUpdate{},
		recorded: map[model.ObservationKey]bool{},
	}
}

func (s *MemoryStore) ReplaceSnapshot(obs []model.TripUpdate) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshot = append([]model.TripUpdate{}, obs...)
	return nil
}

func (s *MemoryStore) AppendHistory(obs []model.TripUpdate) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	inserted := 0
	for _, o := range obs {
		key := o.Key()
		if s.recorded[key] {
			continue
		}
		s.recorded[key] = true
		s.history = append(s.history, o)
		inserted++
	}

	return inserted, nil
}

func (s *MemoryStore) Snapshot() ([]model.TripUpdate, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]model.TripUpdate{}, s.snapshot...), nil
}

func (s *MemoryStore) History() ([]model.TripUpdate, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]model.TripUpdate{}, s.history...), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
