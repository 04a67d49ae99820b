package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
	"github.com/dihora04/djbook.in-sub000/internal/domain/repositories"
	"github.com/dihora04/djbook.in-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/dihora04/djbook.in-sub000/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface using PostgreSQL
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":            review.ID,
		"dj_profile_id": review.DJProfileID,
		"customer_id":   review.CustomerID,
		"customer_name": review.CustomerName,
		"rating":        review.Rating,
		"comment":       review.Comment,
		"created_at":    review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// ListByDJ retrieves reviews for a DJ profile, newest first
func (a *ReviewAdapter) ListByDJ(ctx context.Context, djProfileID string) ([]*entities.Review, error) {
	query, args, err := a.db.Select(
		"id", "dj_profile_id", "customer_id", "customer_name",
		"rating", "comment", "created_at",
	).
		From("reviews").
		Where(goqu.Ex{"dj_profile_id": djProfileID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		var comment sql.NullString
		if err := rows.Scan(
			&review.ID,
			&review.DJProfileID,
			&review.CustomerID,
			&review.CustomerName,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		review.Comment = comment.String
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}
