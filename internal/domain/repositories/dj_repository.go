package repositories

import (
	"context"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// DJRepository defines the interface for DJ profile data operations
type DJRepository interface {
	// Create creates a new DJ profile
	Create(ctx context.Context, profile *entities.DJProfile) error

	// GetByID retrieves a DJ profile by ID
	GetByID(ctx context.Context, id string) (*entities.DJProfile, error)

	// GetBySlug retrieves a DJ profile by its unique slug
	GetBySlug(ctx context.Context, slug string) (*entities.DJProfile, error)

	// SlugExists reports whether a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Update updates a DJ profile
	Update(ctx context.Context, profile *entities.DJProfile) error

	// Delete removes a DJ profile
	Delete(ctx context.Context, id string) error

	// List retrieves profiles matching the filter
	List(ctx context.Context, filter DJFilter) ([]*entities.DJProfile, error)

	// Search searches approved profiles by text, location and genre
	Search(ctx context.Context, params SearchParams) ([]*entities.DJProfile, error)
}

// DJSearchRepository defines the interface for the directory search index
// (e.g. Typesense), kept separate from the primary store.
type DJSearchRepository interface {
	// Search searches indexed profiles
	Search(ctx context.Context, params SearchParams) ([]*entities.DJProfile, error)

	// Index adds or refreshes a profile in the index
	Index(ctx context.Context, profile *entities.DJProfile) error

	// Delete removes a profile from the index
	Delete(ctx context.Context, id string) error
}

// DJFilter defines filters for listing DJ profiles
type DJFilter struct {
	ApprovalStatus entities.ApprovalStatus
	Featured       *bool
	City           string
	Limit          int
	Offset         int
}

// SearchParams defines parameters for directory search. Geo filtering is
// applied when Latitude/Longitude are both non-zero.
type SearchParams struct {
	Query     string
	City      string
	State     string
	Genre     string
	EventType string
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	MaxFee    *float64
	Limit     int
	Offset    int
}
