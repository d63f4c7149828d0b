package geofence

import (
	"context"
	"sync"
)

// InMemoryStore keeps geofences in process memory. It backs tests and
// single-node deployments; the Postgres store is the shared production
// implementation. Per-owner slices preserve creation order for List.
type InMemoryStore struct {
	mu      sync.RWMutex
	byOwner map[Owner][]Geofence
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byOwner: make(map[Owner][]Geofence)}
}

func (s *InMemoryStore) Insert(_ context.Context, g Geofence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byOwner[g.Owner] = append(s.byOwner[g.Owner], g)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, owner Owner, id string) (Geofence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.byOwner[owner] {
		if g.ID == id {
			return g, nil
		}
	}
	return Geofence{}, ErrNotFound
}

func (s *InMemoryStore) Update(_ context.Context, updated Geofence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.byOwner[updated.Owner]
	for i, g := range list {
		if g.ID == updated.ID {
			list[i] = updated
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, owner Owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.byOwner[owner]
	for i, g := range list {
		if g.ID == id {
			s.byOwner[owner] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemoryStore) ListByOwner(_ context.Context, owner Owner) ([]Geofence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byOwner[owner]
	out := make([]Geofence, len(list))
	copy(out, list)
	return out, nil
}

func (s *InMemoryStore) ListForFamilies(_ context.Context, familyIDs []string) ([]Geofence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Geofence
	for _, id := range familyIDs {
		out = append(out, s.byOwner[Owner{Type: OwnerFamily, ID: id}]...)
	}
	return out, nil
}
