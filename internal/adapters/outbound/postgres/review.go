package postgres

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/domain"
	"github.com/cleitonmarx/symbiont-ai-catalog/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReviewRepository implements the domain.ReviewRepository interface using
// PostgreSQL as the storage backend.
type ReviewRepository struct {
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(br squirrel.BaseRunner) ReviewRepository {
	return ReviewRepository{
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(br),
	}
}

// TopRatedProducts aggregates reviews by product, counting only reviews where
// a rating is present, keeping products with at least minRatings ratings,
// ordered by average rating then rating count descending.
func (rr ReviewRepository) TopRatedProducts(ctx context.Context, minRatings, limit int) ([]domain.ProductRating, error) {
	spanCtx, span := telemetry.Start(ctx, trace.WithAttributes(
		attribute.Int("min_ratings", minRatings),
		attribute.Int("limit", limit),
	))
	defer span.End()

	rows, err := rr.sb.
		Select("product_id", "AVG(rating) AS avg_rating", "COUNT(*) AS rating_count").
		From("reviews").
		Where("rating IS NOT NULL").
		GroupBy("product_id").
		Having("COUNT(*) >= ?", minRatings).
		OrderBy("avg_rating DESC", "rating_count DESC", "product_id ASC").
		Limit(uint64(limit)).
		QueryContext(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var ratings []domain.ProductRating
	for rows.Next() {
		var r domain.ProductRating
		if err := rows.Scan(&r.ProductID, &r.AvgRating, &r.RatingCount); telemetry.RecordErrorAndStatus(span, err) {
			return nil, err
		}
		ratings = append(ratings, r)
	}

	if err := rows.Err(); telemetry.RecordErrorAndStatus(span, err) {
		return nil, err
	}
	return ratings, nil
}

// InitReviewRepository is a Symbiont initializer for ReviewRepository.
type InitReviewRepository struct {
	DB *sql.DB `resolve:""`
}

// Initialize registers the ReviewRepository in the dependency container.
func (irr InitReviewRepository) Initialize(ctx context.Context) (context.Context, error) {
	depend.Register[domain.ReviewRepository](NewReviewRepository(irr.DB))
	return ctx, nil
}
