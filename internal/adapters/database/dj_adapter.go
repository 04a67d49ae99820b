package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// DJAdapter implements the DJRepository interface using PostgreSQL
type DJAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDJAdapter creates a new DJ profile adapter
func NewDJAdapter(client *postgres.Client) repositories.DJRepository {
	return &DJAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var djColumns = []interface{}{
	"id", "user_id", "name", "slug", "city", "state",
	"genres", "event_types", "min_fee", "bio", "gallery", "videos",
	"verified", "featured", "avg_rating", "review_count",
	"profile_image", "cover_image", "approval_status", "plan",
	"latitude", "longitude", "live_status", "created_at", "updated_at",
}

// Create creates a new DJ profile
func (a *DJAdapter) Create(ctx context.Context, profile *entities.DJProfile) error {
	query, args, err := a.db.Insert("dj_profiles").Rows(djRecord(profile)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a profile with this slug already exists")
		}
		return apperrors.NewInternalError("failed to create dj profile", err)
	}
	return nil
}

// GetByID retrieves a DJ profile by ID
func (a *DJAdapter) GetByID(ctx context.Context, id string) (*entities.DJProfile, error) {
	return a.getOne(ctx, goqu.Ex{"id": id}, fmt.Sprintf("dj profile %s not found", id))
}

// GetBySlug retrieves a DJ profile by its unique slug
func (a *DJAdapter) GetBySlug(ctx context.Context, slug string) (*entities.DJProfile, error) {
	return a.getOne(ctx, goqu.Ex{"slug": slug}, fmt.Sprintf("dj profile %s not found", slug))
}

// SlugExists reports whether a slug is already taken
func (a *DJAdapter) SlugExists(ctx context.Context, slug string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("dj_profiles").
		Where(goqu.Ex{"slug": slug}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check slug", err)
	}
	return count > 0, nil
}

// Update updates a DJ profile
func (a *DJAdapter) Update(ctx context.Context, profile *entities.DJProfile) error {
	profile.UpdatedAt = time.Now()
	record := djRecord(profile)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("dj_profiles").
		Set(record).
		Where(goqu.Ex{"id": profile.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update dj profile", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("dj profile %s not found", profile.ID))
	}
	return nil
}

// Delete removes a DJ profile
func (a *DJAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("dj_profiles").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete dj profile", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("dj profile %s not found", id))
	}
	return nil
}

// List retrieves profiles matching the filter
func (a *DJAdapter) List(ctx context.Context, filter repositories.DJFilter) ([]*entities.DJProfile, error) {
	ds := a.db.Select(djColumns...).From("dj_profiles")
	if filter.ApprovalStatus != "" {
		ds = ds.Where(goqu.Ex{"approval_status": filter.ApprovalStatus})
	}
	if filter.Featured != nil {
		ds = ds.Where(goqu.Ex{"featured": *filter.Featured})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.L("LOWER(city)").Eq(strings.ToLower(filter.City)))
	}
	ds = ds.Order(goqu.C("created_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}
	return a.queryProfiles(ctx, query, args)
}

// Search searches approved profiles by text, location and genre. This is the
// fallback path when the search index is unavailable; ranking matches the
// index ordering so both paths return comparable results.
func (a *DJAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.DJProfile, error) {
	ds := a.db.Select(djColumns...).
		From("dj_profiles").
		Where(goqu.Ex{"approval_status": entities.ApprovalStatusApproved})

	if params.Query != "" {
		pattern := "%" + strings.ToLower(params.Query) + "%"
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(name)").Like(pattern),
			goqu.L("LOWER(city)").Like(pattern),
			goqu.L("LOWER(bio)").Like(pattern),
		))
	}
	if params.City != "" {
		ds = ds.Where(goqu.L("LOWER(city)").Eq(strings.ToLower(params.City)))
	}
	if params.State != "" {
		ds = ds.Where(goqu.L("LOWER(state)").Eq(strings.ToLower(params.State)))
	}
	if params.Genre != "" {
		ds = ds.Where(goqu.L("? = ANY(genres)", params.Genre))
	}
	if params.EventType != "" {
		ds = ds.Where(goqu.L("? = ANY(event_types)", params.EventType))
	}
	if params.MaxFee != nil {
		ds = ds.Where(goqu.C("min_fee").Lte(*params.MaxFee))
	}
	if params.Latitude != 0 || params.Longitude != 0 {
		radius := params.RadiusKm
		if radius <= 0 {
			radius = 50
		}
		// Haversine distance in km over the stored coordinates
		ds = ds.Where(goqu.L(
			"latitude IS NOT NULL AND longitude IS NOT NULL AND "+
				"(6371 * acos(LEAST(1.0, cos(radians(?)) * cos(radians(latitude)) * "+
				"cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))) <= ?",
			params.Latitude, params.Longitude, params.Latitude, radius,
		))
	}

	ds = ds.Order(
		goqu.C("featured").Desc(),
		goqu.C("verified").Desc(),
		goqu.C("avg_rating").Desc(),
		goqu.C("name").Asc(),
	)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	ds = ds.Limit(uint(limit))
	if params.Offset > 0 {
		ds = ds.Offset(uint(params.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}
	return a.queryProfiles(ctx, query, args)
}

func (a *DJAdapter) getOne(ctx context.Context, where goqu.Ex, notFoundMsg string) (*entities.DJProfile, error) {
	query, args, err := a.db.Select(djColumns...).
		From("dj_profiles").
		Where(where).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile, err := scanDJProfile(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(notFoundMsg)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get dj profile", err)
	}
	return profile, nil
}

func (a *DJAdapter) queryProfiles(ctx context.Context, query string, args []interface{}) ([]*entities.DJProfile, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query dj profiles", err)
	}
	defer rows.Close()

	var profiles []*entities.DJProfile
	for rows.Next() {
		profile, err := scanDJProfile(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan dj profile", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate dj profiles", err)
	}
	return profiles, nil
}

func djRecord(profile *entities.DJProfile) goqu.Record {
	record := goqu.Record{
		"id":              profile.ID,
		"user_id":         profile.UserID,
		"name":            profile.Name,
		"slug":            profile.Slug,
		"city":            profile.City,
		"state":           profile.State,
		"genres":          pq.Array(profile.Genres),
		"event_types":     pq.Array(profile.EventTypes),
		"min_fee":         profile.MinFee,
		"bio":             profile.Bio,
		"gallery":         pq.Array(profile.Gallery),
		"videos":          pq.Array(profile.Videos),
		"verified":        profile.Verified,
		"featured":        profile.Featured,
		"avg_rating":      profile.AvgRating,
		"review_count":    profile.ReviewCount,
		"profile_image":   profile.ProfileImage,
		"cover_image":     profile.CoverImage,
		"approval_status": profile.ApprovalStatus,
		"plan":            profile.Plan,
		"live_status":     profile.LiveStatus,
		"created_at":      profile.CreatedAt,
		"updated_at":      profile.UpdatedAt,
	}
	if profile.Location != nil {
		record["latitude"] = profile.Location.Latitude
		record["longitude"] = profile.Location.Longitude
	} else {
		record["latitude"] = nil
		record["longitude"] = nil
	}
	return record
}

func scanDJProfile(row rowScanner) (*entities.DJProfile, error) {
	profile := &entities.DJProfile{}
	var (
		state, bio, profileImage, coverImage, liveStatus sql.NullString
		latitude, longitude                              sql.NullFloat64
		genres, eventTypes, gallery, videos              pq.StringArray
	)

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Slug,
		&profile.City,
		&state,
		&genres,
		&eventTypes,
		&profile.MinFee,
		&bio,
		&gallery,
		&videos,
		&profile.Verified,
		&profile.Featured,
		&profile.AvgRating,
		&profile.ReviewCount,
		&profileImage,
		&coverImage,
		&profile.ApprovalStatus,
		&profile.Plan,
		&latitude,
		&longitude,
		&liveStatus,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.State = state.String
	profile.Bio = bio.String
	profile.ProfileImage = profileImage.String
	profile.CoverImage = coverImage.String
	profile.LiveStatus = liveStatus.String
	profile.Genres = genres
	profile.EventTypes = eventTypes
	profile.Gallery = gallery
	profile.Videos = videos
	if latitude.Valid && longitude.Valid {
		profile.Location = &entities.Location{
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
		}
	}
	return profile, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
