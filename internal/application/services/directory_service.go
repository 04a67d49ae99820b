package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// DirectoryService is the public read side over DJ profiles: search,
// featured listings and profile lookups. Only APPROVED profiles leave
// this service.
type DirectoryService struct {
	djs             repositories.DJRepository
	searchIndex     repositories.DJSearchRepository
	defaultRadiusKm float64
}

// NewDirectoryService creates a new directory service. searchIndex may be
// nil; search then falls back to the primary repository.
func NewDirectoryService(djs repositories.DJRepository, searchIndex repositories.DJSearchRepository, defaultRadiusKm float64) *DirectoryService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 50
	}
	return &DirectoryService{
		djs:             djs,
		searchIndex:     searchIndex,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// Search filters approved profiles by text, city, state, genre and
// geo-radius, ranked featured > verified > rating.
func (s *DirectoryService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error) {
	if params.RadiusKm <= 0 {
		params.RadiusKm = s.defaultRadiusKm
	}

	var (
		results []*entities.DJProfile
		err     error
	)
	if s.searchIndex != nil {
		results, err = s.searchIndex.Search(ctx, params)
		if err != nil {
			log.Warn().Err(err).Msg("search index unavailable, falling back to primary store")
			results, err = s.djs.Search(ctx, params)
		}
	} else {
		results, err = s.djs.Search(ctx, params)
	}
	if err != nil {
		return nil, err
	}

	// The index only holds approved profiles, but rank here regardless of
	// which path produced the results.
	visible := results[:0]
	for _, p := range results {
		if p.PubliclyVisible() {
			visible = append(visible, p)
		}
	}
	rankProfiles(visible)
	return visible, nil
}

// FeaturedDJs lists approved, featured profiles
func (s *DirectoryService) FeaturedDJs(ctx context.Context, limit int) ([]*entities.DJProfile, error) {
	featured := true
	profiles, err := s.djs.List(ctx, repositories.DJFilter{
		ApprovalStatus: entities.ApprovalStatusApproved,
		Featured:       &featured,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	rankProfiles(profiles)
	return profiles, nil
}

// GetDJBySlug retrieves an approved profile by slug
func (s *DirectoryService) GetDJBySlug(ctx context.Context, slug string) (*entities.DJProfile, error) {
	profile, err := s.djs.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !profile.PubliclyVisible() {
		return nil, apperrors.NewNotFoundError("dj profile not found")
	}
	return profile, nil
}

// GetDJByID retrieves an approved profile by id
func (s *DirectoryService) GetDJByID(ctx context.Context, id string) (*entities.DJProfile, error) {
	profile, err := s.djs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !profile.PubliclyVisible() {
		return nil, apperrors.NewNotFoundError("dj profile not found")
	}
	return profile, nil
}

// rankProfiles orders featured before verified before the rest, breaking
// ties on rating then name for a stable listing.
func rankProfiles(profiles []*entities.DJProfile) {
	sort.SliceStable(profiles, func(i, j int) bool {
		a, b := profiles[i], profiles[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if a.Verified != b.Verified {
			return a.Verified
		}
		if a.AvgRating != b.AvgRating {
			return a.AvgRating > b.AvgRating
		}
		return a.Name < b.Name
	})
}
