// Package memstore provides in-memory implementations of the
// repository interfaces, used when no database is configured and in
// tests. Stores guard a plain map with a RWMutex and hand out deep
// copies, so callers never share memory with the store. Writes are
// last-write-wins; there is no optimistic concurrency control.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/query"
	"github.com/adresponse/adresponse/internal/service"
)

// RFPStore is an in-memory RFP repository.
type RFPStore struct {
	mu   sync.RWMutex
	rfps map[int]*domain.RFP
}

// NewRFPStore creates an empty RFPStore.
func NewRFPStore() *RFPStore {
	return &RFPStore{
		rfps: make(map[int]*domain.RFP),
	}
}

// Create assigns the highest existing ID plus one and stores a copy of
// the RFP. The caller's struct gets the assigned ID written back.
func (s *RFPStore) Create(ctx context.Context, r *domain.RFP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = nextMapID(s.rfps)
	s.rfps[r.ID] = cloneRFP(r)
	return nil
}

// GetByID returns a copy of the RFP or ErrRFPNotFound.
func (s *RFPStore) GetByID(ctx context.Context, id int) (*domain.RFP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rfps[id]
	if !ok {
		return nil, domain.ErrRFPNotFound
	}
	return cloneRFP(r), nil
}

// List returns a filtered page ordered by updated_at descending.
func (s *RFPStore) List(ctx context.Context, filter service.ListRFPsFilter) (*service.RFPPage, error) {
	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()

	sortByUpdatedDesc(all)

	matched := query.Filter(all, func(r *domain.RFP) bool {
		return query.MatchesSearch(filter.Search, r.Name, r.AgencyName, r.AdvertiserClientName) &&
			query.MatchesFilter(filter.Status, string(r.Status), query.AllStatuses)
	})

	page := query.Paginate(matched, query.Page{Number: filter.Page, PerPage: filter.PerPage})
	return &service.RFPPage{
		Items:       page.Items,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
	}, nil
}

// ListAll returns copies of every RFP in ID order.
func (s *RFPStore) ListAll(ctx context.Context) ([]*domain.RFP, error) {
	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

// ListRecent returns the most recently updated RFPs, newest first.
func (s *RFPStore) ListRecent(ctx context.Context, limit int) ([]*domain.RFP, error) {
	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()

	sortByUpdatedDesc(all)
	if limit >= 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ListPendingAnalysis returns RFPs with AI processing enabled that have
// no analysis document yet.
func (s *RFPStore) ListPendingAnalysis(ctx context.Context) ([]*domain.RFP, error) {
	s.mu.RLock()
	all := s.snapshot()
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return query.Filter(all, func(r *domain.RFP) bool {
		return r.AIProcessingEnabled && r.Analysis == nil
	}), nil
}

// Update replaces the stored RFP or returns ErrRFPNotFound.
func (s *RFPStore) Update(ctx context.Context, r *domain.RFP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rfps[r.ID]; !ok {
		return domain.ErrRFPNotFound
	}
	s.rfps[r.ID] = cloneRFP(r)
	return nil
}

// Delete removes the RFP and its attachment metadata or returns
// ErrRFPNotFound.
func (s *RFPStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rfps[id]; !ok {
		return domain.ErrRFPNotFound
	}
	delete(s.rfps, id)
	return nil
}

// nextMapID returns the highest key plus one, or 1 for an empty map.
// After the highest-id record is deleted its ID is handed out again.
func nextMapID[T any](m map[int]T) int {
	next := 1
	for id := range m {
		if id >= next {
			next = id + 1
		}
	}
	return next
}

// snapshot copies every stored RFP. Callers must hold at least the
// read lock.
func (s *RFPStore) snapshot() []*domain.RFP {
	all := make([]*domain.RFP, 0, len(s.rfps))
	for _, r := range s.rfps {
		all = append(all, cloneRFP(r))
	}
	return all
}

func sortByUpdatedDesc(rfps []*domain.RFP) {
	sort.Slice(rfps, func(i, j int) bool {
		if rfps[i].UpdatedAt.Equal(rfps[j].UpdatedAt) {
			return rfps[i].ID > rfps[j].ID
		}
		return rfps[i].UpdatedAt.After(rfps[j].UpdatedAt)
	})
}

func cloneRFP(r *domain.RFP) *domain.RFP {
	c := *r

	if r.TeamMemberIDs != nil {
		c.TeamMemberIDs = append([]int(nil), r.TeamMemberIDs...)
	}
	if r.Attachments != nil {
		c.Attachments = append([]domain.Attachment(nil), r.Attachments...)
	}
	if r.Analysis != nil {
		a := *r.Analysis
		a.Insights = append([]string(nil), r.Analysis.Insights...)
		a.Recommendations = append([]string(nil), r.Analysis.Recommendations...)
		a.RiskFactors = append([]string(nil), r.Analysis.RiskFactors...)
		c.Analysis = &a
	}
	if r.Proposal != nil {
		p := *r.Proposal
		p.KPIs = append([]string(nil), r.Proposal.KPIs...)
		if r.Proposal.BudgetBreakdown != nil {
			p.BudgetBreakdown = make(map[string]string, len(r.Proposal.BudgetBreakdown))
			for k, v := range r.Proposal.BudgetBreakdown {
				p.BudgetBreakdown[k] = v
			}
		}
		c.Proposal = &p
	}
	if r.QualityCheck != nil {
		q := *r.QualityCheck
		q.Recommendations = append([]string(nil), r.QualityCheck.Recommendations...)
		c.QualityCheck = &q
	}

	return &c
}
