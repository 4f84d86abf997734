package devbackend

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nouman-Qamar/Ai-Construction-Admin/internal/core/domain"
)

// Collection names.
const (
	CollUsers       = "users"
	CollClients     = "clients"
	CollContractors = "contractors"
	CollLaborers    = "laborers"
	CollProjects    = "projects"
	CollBids        = "bids"
)

type collection struct {
	order []string
	items map[string]domain.Record
}

// Records is an in-memory document store keyed by collection and ID.
// Returned records are copies.
type Records struct {
	mu          sync.RWMutex
	collections map[string]*collection
	now         func() time.Time
}

func NewRecords() *Records {
	return &Records{collections: make(map[string]*collection), now: time.Now}
}

func copyRecord(r domain.Record) domain.Record {
	out := make(domain.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (s *Records) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{items: make(map[string]domain.Record)}
		s.collections[name] = c
	}
	return c
}

// List returns the records of a collection in insertion order, filtered by
// match when it is non-nil.
func (s *Records) List(name string, match func(domain.Record) bool) []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return []domain.Record{}
	}
	out := make([]domain.Record, 0, len(c.order))
	for _, id := range c.order {
		rec := c.items[id]
		if match == nil || match(rec) {
			out = append(out, copyRecord(rec))
		}
	}
	return out
}

// Count is len(List(name, match)) without the copies.
func (s *Records) Count(name string, match func(domain.Record) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return 0
	}
	n := 0
	for _, rec := range c.items {
		if match == nil || match(rec) {
			n++
		}
	}
	return n
}

// Recent returns up to limit records, newest first.
func (s *Records) Recent(name string, limit int) []domain.Record {
	all := s.List(name, nil)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

func (s *Records) Get(name, id string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	rec, ok := c.items[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return copyRecord(rec), nil
}

// Create stores rec, assigning an _id unless one is set, and stamps it.
func (s *Records) Create(name string, rec domain.Record) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyRecord(rec)
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
	}
	stored["_id"] = id
	now := s.now().UTC().Format(time.RFC3339)
	stored["createdAt"] = now
	stored["updatedAt"] = now

	c := s.coll(name)
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = stored
	return copyRecord(stored)
}

// Update merges patch into the record. The _id field cannot change.
func (s *Records) Update(name, id string, patch domain.Record) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	rec, ok := c.items[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	for k, v := range patch {
		if k == "_id" || k == "createdAt" {
			continue
		}
		rec[k] = v
	}
	rec["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	return copyRecord(rec), nil
}

func (s *Records) Delete(name, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[name]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if _, ok := c.items[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}
