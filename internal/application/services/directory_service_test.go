package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/internal/adapters/memory"
	"github.com/dihora04/djbook.in-sub000/internal/application/services"
	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

func seedDirectory(t *testing.T) *memory.DJStore {
	t.Helper()
	store := memory.NewDJStore()
	ctx := context.Background()

	profiles := []*entities.DJProfile{
		{
			ID: "dj-free", Name: "DJ Free", Slug: "dj-free", City: "Mumbai",
			Genres: []string{"bollywood"}, AvgRating: 4.9,
			ApprovalStatus: entities.ApprovalStatusApproved, Plan: entities.PlanFree,
			Location: &entities.Location{Latitude: 19.0760, Longitude: 72.8777},
		},
		{
			ID: "dj-pro", Name: "DJ Pro", Slug: "dj-pro", City: "Mumbai",
			Genres: []string{"techno"}, AvgRating: 4.1,
			Verified: true, Featured: true,
			ApprovalStatus: entities.ApprovalStatusApproved, Plan: entities.PlanPro,
			Location: &entities.Location{Latitude: 19.0896, Longitude: 72.8656},
		},
		{
			ID: "dj-elite", Name: "DJ Elite", Slug: "dj-elite", City: "Delhi",
			Genres: []string{"edm"}, AvgRating: 4.5,
			Verified: true, Featured: true,
			ApprovalStatus: entities.ApprovalStatusApproved, Plan: entities.PlanElite,
			Location: &entities.Location{Latitude: 28.7041, Longitude: 77.1025},
		},
		{
			ID: "dj-pending", Name: "DJ Pending", Slug: "dj-pending", City: "Mumbai",
			Genres: []string{"bollywood"}, AvgRating: 5.0,
			ApprovalStatus: entities.ApprovalStatusPending, Plan: entities.PlanFree,
		},
	}
	for _, p := range profiles {
		require.NoError(t, store.Create(ctx, p))
	}
	return store
}

func TestDirectoryService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("only approved profiles appear", func(t *testing.T) {
		service := services.NewDirectoryService(seedDirectory(t), nil, 50)

		results, err := service.Search(ctx, repositories.SearchParams{})
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, p := range results {
			assert.NotEqual(t, "dj-pending", p.ID)
		}
	})

	t.Run("featured then verified then rating", func(t *testing.T) {
		service := services.NewDirectoryService(seedDirectory(t), nil, 50)

		results, err := service.Search(ctx, repositories.SearchParams{})
		require.NoError(t, err)
		require.Len(t, results, 3)
		// Both featured profiles first, higher rating between them wins,
		// the unfeatured one last despite its top rating.
		assert.Equal(t, "dj-elite", results[0].ID)
		assert.Equal(t, "dj-pro", results[1].ID)
		assert.Equal(t, "dj-free", results[2].ID)
	})

	t.Run("city filter", func(t *testing.T) {
		service := services.NewDirectoryService(seedDirectory(t), nil, 50)

		results, err := service.Search(ctx, repositories.SearchParams{City: "mumbai"})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("geo radius filter", func(t *testing.T) {
		service := services.NewDirectoryService(seedDirectory(t), nil, 50)

		// Centered on Mumbai with the default radius, Delhi stays out
		results, err := service.Search(ctx, repositories.SearchParams{
			Latitude:  19.0760,
			Longitude: 72.8777,
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, p := range results {
			assert.Equal(t, "Mumbai", p.City)
		}
	})

	t.Run("genre filter", func(t *testing.T) {
		service := services.NewDirectoryService(seedDirectory(t), nil, 50)

		results, err := service.Search(ctx, repositories.SearchParams{Genre: "techno"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "dj-pro", results[0].ID)
	})
}

func TestDirectoryService_FeaturedDJs(t *testing.T) {
	ctx := context.Background()
	service := services.NewDirectoryService(seedDirectory(t), nil, 50)

	featured, err := service.FeaturedDJs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "dj-elite", featured[0].ID)
	assert.Equal(t, "dj-pro", featured[1].ID)
}

func TestDirectoryService_GetDJ(t *testing.T) {
	ctx := context.Background()
	service := services.NewDirectoryService(seedDirectory(t), nil, 50)

	t.Run("approved profile by slug", func(t *testing.T) {
		profile, err := service.GetDJBySlug(ctx, "dj-pro")
		require.NoError(t, err)
		assert.Equal(t, "dj-pro", profile.ID)
	})

	t.Run("pending profile is hidden", func(t *testing.T) {
		_, err := service.GetDJBySlug(ctx, "dj-pending")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

		_, err = service.GetDJByID(ctx, "dj-pending")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := service.GetDJBySlug(ctx, "nope")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}
