package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// DJStore is an in-memory DJRepository
type DJStore struct {
	mu       sync.RWMutex
	profiles map[string]*entities.DJProfile
	bySlug   map[string]string
}

// NewDJStore creates an empty in-memory DJ profile store
func NewDJStore() *DJStore {
	return &DJStore{
		profiles: make(map[string]*entities.DJProfile),
		bySlug:   make(map[string]string),
	}
}

// Create creates a new DJ profile
func (s *DJStore) Create(ctx context.Context, profile *entities.DJProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("dj profile %s already exists", profile.ID))
	}
	if _, ok := s.bySlug[profile.Slug]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("slug %s already taken", profile.Slug))
	}
	c := copyProfile(profile)
	s.profiles[profile.ID] = c
	s.bySlug[profile.Slug] = profile.ID
	return nil
}

// GetByID retrieves a DJ profile by ID
func (s *DJStore) GetByID(ctx context.Context, id string) (*entities.DJProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dj profile %s not found", id))
	}
	return copyProfile(p), nil
}

// GetBySlug retrieves a DJ profile by slug
func (s *DJStore) GetBySlug(ctx context.Context, slug string) (*entities.DJProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dj profile with slug %s not found", slug))
	}
	return copyProfile(s.profiles[id]), nil
}

// SlugExists reports whether a slug is taken
func (s *DJStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.bySlug[slug]
	return ok, nil
}

// Update updates a DJ profile
func (s *DJStore) Update(ctx context.Context, profile *entities.DJProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("dj profile %s not found", profile.ID))
	}
	if existing.Slug != profile.Slug {
		if _, taken := s.bySlug[profile.Slug]; taken {
			return apperrors.NewConflictError(fmt.Sprintf("slug %s already taken", profile.Slug))
		}
		delete(s.bySlug, existing.Slug)
		s.bySlug[profile.Slug] = profile.ID
	}
	s.profiles[profile.ID] = copyProfile(profile)
	return nil
}

// Delete removes a DJ profile
func (s *DJStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("dj profile %s not found", id))
	}
	delete(s.bySlug, p.Slug)
	delete(s.profiles, id)
	return nil
}

// List retrieves profiles matching the filter
func (s *DJStore) List(ctx context.Context, filter repositories.DJFilter) ([]*entities.DJProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*entities.DJProfile
	for _, p := range s.profiles {
		if filter.ApprovalStatus != "" && p.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		if filter.City != "" && !strings.EqualFold(p.City, filter.City) {
			continue
		}
		out = append(out, copyProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, filter.Limit, filter.Offset), nil
}

// Search searches approved profiles by text, location and genre
func (s *DJStore) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	geoFilter := params.Latitude != 0 || params.Longitude != 0
	radius := params.RadiusKm
	if radius <= 0 {
		radius = 50
	}

	var out []*entities.DJProfile
	for _, p := range s.profiles {
		if !p.PubliclyVisible() {
			continue
		}
		if params.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Query)) {
			continue
		}
		if params.City != "" && !strings.EqualFold(p.City, params.City) {
			continue
		}
		if params.State != "" && !strings.EqualFold(p.State, params.State) {
			continue
		}
		if params.Genre != "" && !containsFold(p.Genres, params.Genre) {
			continue
		}
		if params.EventType != "" && !containsFold(p.EventTypes, params.EventType) {
			continue
		}
		if params.MaxFee != nil && p.MinFee > *params.MaxFee {
			continue
		}
		if geoFilter {
			if p.Location == nil {
				continue
			}
			d := haversineKm(params.Latitude, params.Longitude, p.Location.Latitude, p.Location.Longitude)
			if d > radius {
				continue
			}
		}
		out = append(out, copyProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, params.Limit, params.Offset), nil
}

func containsFold(xs []string, want string) bool {
	for _, x := range xs {
		if strings.EqualFold(x, want) {
			return true
		}
	}
	return false
}

// haversineKm returns the great-circle distance between two points
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	rad := math.Pi / 180

	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func paginate(out []*entities.DJProfile, limit, offset int) []*entities.DJProfile {
	if offset > 0 {
		if offset >= len(out) {
			return nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyProfile(p *entities.DJProfile) *entities.DJProfile {
	c := *p
	c.Genres = append([]string(nil), p.Genres...)
	c.EventTypes = append([]string(nil), p.EventTypes...)
	c.Gallery = append([]string(nil), p.Gallery...)
	c.Videos = append([]string(nil), p.Videos...)
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	return &c
}
