package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adresponse/adresponse/internal/domain"
)

// TeamStore is an in-memory team member repository. Members come from
// seed data; there is no write API beyond seeding.
type TeamStore struct {
	mu      sync.RWMutex
	members map[int]*domain.TeamMember
}

// NewTeamStore creates an empty TeamStore.
func NewTeamStore() *TeamStore {
	return &TeamStore{
		members: make(map[int]*domain.TeamMember),
	}
}

// Create assigns the highest existing ID plus one and stores a copy of
// the member.
func (s *TeamStore) Create(ctx context.Context, m *domain.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = nextMapID(s.members)
	clone := *m
	s.members[m.ID] = &clone
	return nil
}

// GetByID returns a copy of the member or ErrTeamMemberNotFound.
func (s *TeamStore) GetByID(ctx context.Context, id int) (*domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.members[id]
	if !ok {
		return nil, domain.ErrTeamMemberNotFound
	}
	clone := *m
	return &clone, nil
}

// List returns all members in ID order.
func (s *TeamStore) List(ctx context.Context) ([]*domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.TeamMember, 0, len(s.members))
	for _, m := range s.members {
		clone := *m
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
