package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/memory"
	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

func TestReviewService_AddReview(t *testing.T) {
	ctx := context.Background()
	clock := fixedClock{now: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)}

	newFixture := func(t *testing.T) (*services.ReviewService, *memory.DJStore) {
		t.Helper()
		djs := memory.NewDJStore()
		require.NoError(t, djs.Create(ctx, &entities.DJProfile{
			ID:             "dj-1",
			Name:           "DJ Arjun",
			Slug:           "dj-arjun",
			ApprovalStatus: entities.ApprovalStatusApproved,
		}))
		return services.NewReviewService(memory.NewReviewStore(), djs, clock), djs
	}

	t.Run("first review sets the average", func(t *testing.T) {
		service, djs := newFixture(t)

		review, err := service.AddReview(ctx, "dj-1", "customer-1", "Priya", 4, "great set")
		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)

		profile, err := djs.GetByID(ctx, "dj-1")
		require.NoError(t, err)
		assert.Equal(t, 1, profile.ReviewCount)
		assert.InDelta(t, 4.0, profile.AvgRating, 0.001)
	})

	t.Run("average tracks successive reviews", func(t *testing.T) {
		service, djs := newFixture(t)

		_, err := service.AddReview(ctx, "dj-1", "customer-1", "Priya", 4, "")
		require.NoError(t, err)
		_, err = service.AddReview(ctx, "dj-1", "customer-2", "Rahul", 5, "")
		require.NoError(t, err)
		_, err = service.AddReview(ctx, "dj-1", "customer-3", "Sneha", 3, "")
		require.NoError(t, err)

		profile, err := djs.GetByID(ctx, "dj-1")
		require.NoError(t, err)
		assert.Equal(t, 3, profile.ReviewCount)
		assert.InDelta(t, 4.0, profile.AvgRating, 0.001)
	})

	t.Run("rating bounds", func(t *testing.T) {
		service, _ := newFixture(t)

		_, err := service.AddReview(ctx, "dj-1", "customer-1", "Priya", 0, "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

		_, err = service.AddReview(ctx, "dj-1", "customer-1", "Priya", 6, "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("unknown profile", func(t *testing.T) {
		service, _ := newFixture(t)

		_, err := service.AddReview(ctx, "nope", "customer-1", "Priya", 4, "")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("reviews list newest first", func(t *testing.T) {
		service, _ := newFixture(t)

		_, err := service.AddReview(ctx, "dj-1", "customer-1", "Priya", 4, "first")
		require.NoError(t, err)
		_, err = service.AddReview(ctx, "dj-1", "customer-2", "Rahul", 5, "second")
		require.NoError(t, err)

		reviews, err := service.ListReviews(ctx, "dj-1")
		require.NoError(t, err)
		require.Len(t, reviews, 2)
	})
}
