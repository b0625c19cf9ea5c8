// Package memory provides an in-memory implementation of the rowguard
// store. It is intended for testing and development.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/rowguard/rowguard/decisionlog"
	"github.com/rowguard/rowguard/id"
	"github.com/rowguard/rowguard/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a thread-safe in-memory decision log store.
type Store struct {
	mu        sync.RWMutex
	decisions map[string]*decisionlog.Entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		decisions: make(map[string]*decisionlog.Entry),
	}
}

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

func (s *Store) CreateDecision(_ context.Context, e *decisionlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.decisions[e.ID.String()] = copyEntry(e)
	return nil
}

func (s *Store) GetDecision(_ context.Context, decisionID id.DecisionID) (*decisionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.decisions[decisionID.String()]
	if !ok {
		return nil, fmt.Errorf("decision %s: %w", decisionID, decisionlog.ErrNotFound)
	}
	return copyEntry(e), nil
}

func (s *Store) ListDecisions(_ context.Context, filter *decisionlog.QueryFilter) ([]*decisionlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*decisionlog.Entry, 0, len(s.decisions))
	for _, e := range s.decisions {
		if !matches(e, filter) {
			continue
		}
		result = append(result, copyEntry(e))
	}
	// Newest first, ID as a tiebreaker for stable ordering.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})
	return paginate(result, filter), nil
}

func (s *Store) CountDecisions(ctx context.Context, filter *decisionlog.QueryFilter) (int64, error) {
	unpaged := *emptyIfNil(filter)
	unpaged.Limit = 0
	unpaged.Offset = 0
	list, err := s.ListDecisions(ctx, &unpaged)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) PurgeDecisions(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for k, e := range s.decisions {
		if e.CreatedAt.Before(before) {
			delete(s.decisions, k)
			count++
		}
	}
	return count, nil
}

func matches(e *decisionlog.Entry, filter *decisionlog.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Permission != "" && e.Permission != filter.Permission {
		return false
	}
	if filter.Resource != "" && e.Resource != filter.Resource {
		return false
	}
	if filter.Principal != "" && !slices.Contains(e.Principals, filter.Principal) {
		return false
	}
	if filter.Decision != "" && e.Decision != filter.Decision {
		return false
	}
	if filter.After != nil && e.CreatedAt.Before(*filter.After) {
		return false
	}
	if filter.Before != nil && e.CreatedAt.After(*filter.Before) {
		return false
	}
	return true
}

// paginate applies offset and limit. Non-positive values are no-ops, so a
// hostile offset from a query parameter can never index out of range.
func paginate(entries []*decisionlog.Entry, filter *decisionlog.QueryFilter) []*decisionlog.Entry {
	if filter == nil {
		return entries
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(entries) {
			return entries[:0]
		}
		entries = entries[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(entries) {
		entries = entries[:filter.Limit]
	}
	return entries
}

func emptyIfNil(filter *decisionlog.QueryFilter) *decisionlog.QueryFilter {
	if filter == nil {
		return &decisionlog.QueryFilter{}
	}
	return filter
}

func copyEntry(e *decisionlog.Entry) *decisionlog.Entry {
	c := *e
	c.Principals = append([]string(nil), e.Principals...)
	if e.MatchedIndex != nil {
		idx := *e.MatchedIndex
		c.MatchedIndex = &idx
	}
	if e.Metadata != nil {
		c.Metadata = make(map[string]any, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
