package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	tsclient "github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements DJSearchRepository against the djs collection.
// Only approved profiles are ever indexed, so search results need no
// further visibility filtering.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// NewTypesenseAdapter creates a new Typesense directory adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the djs collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index adds or refreshes a profile in the index
func (a *TypesenseAdapter) Index(ctx context.Context, profile *entities.DJProfile) error {
	doc := map[string]interface{}{
		"id":           profile.ID,
		"name":         profile.Name,
		"slug":         profile.Slug,
		"city":         profile.City,
		"state":        profile.State,
		"genres":       profile.Genres,
		"event_types":  profile.EventTypes,
		"min_fee":      profile.MinFee,
		"avg_rating":   profile.AvgRating,
		"review_count": profile.ReviewCount,
		"verified":     profile.Verified,
		"featured":     profile.Featured,
		"created_at":   profile.CreatedAt.Unix(),
	}
	if profile.Location != nil {
		doc["location"] = []float64{profile.Location.Latitude, profile.Location.Longitude}
	}

	if _, err := a.client.Client().Collection(tsclient.DJsCollection).Documents().Upsert(ctx, doc); err != nil {
		return fmt.Errorf("failed to index dj profile: %w", err)
	}
	return nil
}

// Delete removes a profile from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(tsclient.DJsCollection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete dj profile from index: %w", err)
	}
	return nil
}

// Search searches indexed profiles
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error) {
	query := params.Query
	if query == "" {
		query = "*"
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,city,genres"),
		Page:    pointer.Int(params.Offset/limit + 1),
		PerPage: pointer.Int(limit),
		SortBy:  pointer.String("featured:desc,verified:desc,avg_rating:desc"),
	}
	if filter := buildFilter(params); filter != "" {
		searchParams.FilterBy = pointer.String(filter)
	}

	result, err := a.client.Client().Collection(tsclient.DJsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search djs: %w", err)
	}

	profiles := []*entities.DJProfile{}
	if result.Hits == nil {
		return profiles, nil
	}
	for _, hit := range *result.Hits {
		doc := *hit.Document
		profiles = append(profiles, docToProfile(doc))
	}
	return profiles, nil
}

func buildFilter(params repositories.SearchParams) string {
	var clauses []string
	if params.City != "" {
		clauses = append(clauses, fmt.Sprintf("city:=%s", params.City))
	}
	if params.State != "" {
		clauses = append(clauses, fmt.Sprintf("state:=%s", params.State))
	}
	if params.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genres:=%s", params.Genre))
	}
	if params.EventType != "" {
		clauses = append(clauses, fmt.Sprintf("event_types:=%s", params.EventType))
	}
	if params.MaxFee != nil {
		clauses = append(clauses, fmt.Sprintf("min_fee:<=%f", *params.MaxFee))
	}
	if params.Latitude != 0 || params.Longitude != 0 {
		clauses = append(clauses, fmt.Sprintf("location:(%f, %f, %f km)", params.Latitude, params.Longitude, params.RadiusKm))
	}
	return strings.Join(clauses, " && ")
}

// docToProfile reconstructs a partial profile from an index document.
// Typesense returns map[string]interface{}, so every field is cast
// defensively; callers needing the full record fetch it from the
// primary store by id.
func docToProfile(doc map[string]interface{}) *entities.DJProfile {
	profile := &entities.DJProfile{
		ApprovalStatus: entities.ApprovalStatusApproved,
	}
	if v, ok := doc["id"].(string); ok {
		profile.ID = v
	}
	if v, ok := doc["name"].(string); ok {
		profile.Name = v
	}
	if v, ok := doc["slug"].(string); ok {
		profile.Slug = v
	}
	if v, ok := doc["city"].(string); ok {
		profile.City = v
	}
	if v, ok := doc["state"].(string); ok {
		profile.State = v
	}
	if v, ok := doc["min_fee"].(float64); ok {
		profile.MinFee = v
	}
	if v, ok := doc["avg_rating"].(float64); ok {
		profile.AvgRating = v
	}
	if v, ok := doc["review_count"].(float64); ok {
		profile.ReviewCount = int(v)
	}
	if v, ok := doc["verified"].(bool); ok {
		profile.Verified = v
	}
	if v, ok := doc["featured"].(bool); ok {
		profile.Featured = v
	}
	profile.Genres = toStrings(doc["genres"])
	profile.EventTypes = toStrings(doc["event_types"])
	if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
		lat, latOK := loc[0].(float64)
		lon, lonOK := loc[1].(float64)
		if latOK && lonOK {
			profile.Location = &entities.Location{Latitude: lat, Longitude: lon}
		}
	}
	return profile
}

func toStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
