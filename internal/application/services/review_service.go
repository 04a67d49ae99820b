package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// ReviewService appends reviews and keeps the profile's rating aggregate
// in step.
type ReviewService struct {
	reviews repositories.ReviewRepository
	djs     repositories.DJRepository
	clock   providers.Clock
}

// NewReviewService creates a new review service
func NewReviewService(reviews repositories.ReviewRepository, djs repositories.DJRepository, clock providers.Clock) *ReviewService {
	if clock == nil {
		clock = providers.SystemClock{}
	}
	return &ReviewService{
		reviews: reviews,
		djs:     djs,
		clock:   clock,
	}
}

// AddReview records a review and recomputes the profile's average rating.
// Reviews are immutable once written.
func (s *ReviewService) AddReview(ctx context.Context, djProfileID, customerID, customerName string, rating int, comment string) (*entities.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}

	profile, err := s.djs.GetByID(ctx, djProfileID)
	if err != nil {
		return nil, err
	}

	review := &entities.Review{
		ID:           uuid.New().String(),
		DJProfileID:  djProfileID,
		CustomerID:   customerID,
		CustomerName: customerName,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	total := profile.AvgRating*float64(profile.ReviewCount) + float64(rating)
	profile.ReviewCount++
	profile.AvgRating = total / float64(profile.ReviewCount)
	profile.UpdatedAt = review.CreatedAt

	if err := s.djs.Update(ctx, profile); err != nil {
		return nil, err
	}
	return review, nil
}

// ListReviews retrieves a DJ's reviews, newest first
func (s *ReviewService) ListReviews(ctx context.Context, djProfileID string) ([]*entities.Review, error) {
	return s.reviews.ListByDJ(ctx, djProfileID)
}
