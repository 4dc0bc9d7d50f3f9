package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adresponse/adresponse/internal/domain"
)

// EmailStore is an in-memory import mailbox. Emails are seed data;
// import only flips the processed flag.
type EmailStore struct {
	mu     sync.RWMutex
	emails map[int]*domain.EmailRFP
}

// NewEmailStore creates an empty EmailStore.
func NewEmailStore() *EmailStore {
	return &EmailStore{
		emails: make(map[int]*domain.EmailRFP),
	}
}

// Create assigns the highest existing ID plus one and stores a copy of
// the email.
func (s *EmailStore) Create(ctx context.Context, e *domain.EmailRFP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = nextMapID(s.emails)
	s.emails[e.ID] = cloneEmail(e)
	return nil
}

// List returns all emails, newest received first.
func (s *EmailStore) List(ctx context.Context) ([]*domain.EmailRFP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.EmailRFP, 0, len(s.emails))
	for _, e := range s.emails {
		all = append(all, cloneEmail(e))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].ReceivedDate.Equal(all[j].ReceivedDate) {
			return all[i].ID < all[j].ID
		}
		return all[i].ReceivedDate.After(all[j].ReceivedDate)
	})
	return all, nil
}

// GetByID returns a copy of the email or ErrEmailNotFound.
func (s *EmailStore) GetByID(ctx context.Context, id int) (*domain.EmailRFP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.emails[id]
	if !ok {
		return nil, domain.ErrEmailNotFound
	}
	return cloneEmail(e), nil
}

// MarkProcessed flips the processed flag or returns ErrEmailNotFound.
func (s *EmailStore) MarkProcessed(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.emails[id]
	if !ok {
		return domain.ErrEmailNotFound
	}
	e.Processed = true
	return nil
}

func cloneEmail(e *domain.EmailRFP) *domain.EmailRFP {
	c := *e
	if e.Attachments != nil {
		c.Attachments = append([]domain.EmailAttachment(nil), e.Attachments...)
	}
	return &c
}
