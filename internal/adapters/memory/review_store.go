package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// ReviewStore is an in-memory, append-only ReviewRepository
type ReviewStore struct {
	mu      sync.RWMutex
	reviews []*entities.Review
}

// NewReviewStore creates an empty in-memory review store
func NewReviewStore() *ReviewStore {
	return &ReviewStore{}
}

// Create creates a new review
func (s *ReviewStore) Create(ctx context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *review
	s.reviews = append(s.reviews, &c)
	return nil
}

// ListByDJ retrieves reviews for a DJ profile, newest first
func (s *ReviewStore) ListByDJ(ctx context.Context, djProfileID string) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.Review
	for _, r := range s.reviews {
		if r.DJProfileID == djProfileID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
