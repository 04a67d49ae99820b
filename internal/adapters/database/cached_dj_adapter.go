package database

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/providers"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
)

const (
	djCacheKeyPrefix     = "dj:id:"
	djSlugCacheKeyPrefix = "dj:slug:"
	djCacheTTLSeconds    = 300
)

// CachedDJAdapter decorates a DJRepository with read-through caching for the
// hot profile lookups. Cache failures degrade to the underlying repository;
// they are logged, never surfaced.
type CachedDJAdapter struct {
	repo  repositories.DJRepository
	cache providers.CacheProvider
}

// NewCachedDJAdapter creates a caching decorator around a DJ repository
func NewCachedDJAdapter(repo repositories.DJRepository, cache providers.CacheProvider) repositories.DJRepository {
	return &CachedDJAdapter{repo: repo, cache: cache}
}

// Create creates a new DJ profile
func (a *CachedDJAdapter) Create(ctx context.Context, profile *entities.DJProfile) error {
	return a.repo.Create(ctx, profile)
}

// GetByID retrieves a DJ profile by ID, from cache when possible
func (a *CachedDJAdapter) GetByID(ctx context.Context, id string) (*entities.DJProfile, error) {
	if profile := a.fromCache(ctx, djCacheKeyPrefix+id); profile != nil {
		return profile, nil
	}

	profile, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.toCache(ctx, djCacheKeyPrefix+id, profile)
	return profile, nil
}

// GetBySlug retrieves a DJ profile by its unique slug, from cache when possible
func (a *CachedDJAdapter) GetBySlug(ctx context.Context, slug string) (*entities.DJProfile, error) {
	if profile := a.fromCache(ctx, djSlugCacheKeyPrefix+slug); profile != nil {
		return profile, nil
	}

	profile, err := a.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	a.toCache(ctx, djSlugCacheKeyPrefix+slug, profile)
	return profile, nil
}

// SlugExists reports whether a slug is already taken
func (a *CachedDJAdapter) SlugExists(ctx context.Context, slug string) (bool, error) {
	return a.repo.SlugExists(ctx, slug)
}

// Update updates a DJ profile and drops its cached copies
func (a *CachedDJAdapter) Update(ctx context.Context, profile *entities.DJProfile) error {
	if err := a.repo.Update(ctx, profile); err != nil {
		return err
	}
	a.invalidate(ctx, profile.ID, profile.Slug)
	return nil
}

// Delete removes a DJ profile and drops its cached copies
func (a *CachedDJAdapter) Delete(ctx context.Context, id string) error {
	var slug string
	if profile, err := a.repo.GetByID(ctx, id); err == nil {
		slug = profile.Slug
	}
	if err := a.repo.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id, slug)
	return nil
}

// List retrieves profiles matching the filter
func (a *CachedDJAdapter) List(ctx context.Context, filter repositories.DJFilter) ([]*entities.DJProfile, error) {
	return a.repo.List(ctx, filter)
}

// Search searches approved profiles by text, location and genre
func (a *CachedDJAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error) {
	return a.repo.Search(ctx, params)
}

func (a *CachedDJAdapter) fromCache(ctx context.Context, key string) *entities.DJProfile {
	if a.cache == nil {
		return nil
	}
	data, err := a.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return nil
	}
	var profile entities.DJProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached dj profile")
		return nil
	}
	return &profile
}

func (a *CachedDJAdapter) toCache(ctx context.Context, key string, profile *entities.DJProfile) {
	if a.cache == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, djCacheTTLSeconds); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache dj profile")
	}
}

func (a *CachedDJAdapter) invalidate(ctx context.Context, id, slug string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Delete(ctx, djCacheKeyPrefix+id); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("failed to invalidate dj profile cache")
	}
	if slug != "" {
		if err := a.cache.Delete(ctx, djSlugCacheKeyPrefix+slug); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("failed to invalidate dj profile cache")
		}
	}
}
