package repositories

import (
	"context"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations.
// Reviews are append-only.
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// ListByDJ retrieves reviews for a DJ profile, newest first
	ListByDJ(ctx context.Context, djProfileID string) ([]*entities.Review, error)
}
